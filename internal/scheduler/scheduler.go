package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/exclusion"
	"github.com/specialistvlad/impactgridgo/internal/executor"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/specialistvlad/impactgridgo/internal/registry"
)

const (
	// acquireBackoffBase is the initial retry delay while polling for a
	// free environment.
	acquireBackoffBase = 10 * time.Millisecond
	// acquireBackoffMax caps the retry delay so a freed environment is
	// never missed for long even if the wake-up signal was coalesced away.
	acquireBackoffMax = 500 * time.Millisecond
)

// Scheduler places targets onto environments under the exclusion-lock
// discipline and executes them. One Scheduler serves one run.
type Scheduler struct {
	registry *registry.Registry
	locks    *exclusion.Lock
	exec     *executor.Executor

	// envWait bounds how long a target queues for a free compatible
	// environment before resolving to skipped/EnvironmentTimeout.
	envWait time.Duration

	events chan *model.Assignment
}

// New creates a scheduler over the given registry, lock table and executor.
func New(reg *registry.Registry, locks *exclusion.Lock, exec *executor.Executor, envWait time.Duration) *Scheduler {
	return &Scheduler{
		registry: reg,
		locks:    locks,
		exec:     exec,
		envWait:  envWait,
		events:   make(chan *model.Assignment),
	}
}

// Events streams every assignment as it reaches a terminal state. The
// channel is closed when Run returns; callers must drain it.
func (s *Scheduler) Events() <-chan *model.Assignment {
	return s.events
}

// Run executes all targets through the two-stage pipeline and returns every
// terminal assignment. Targets must already be in resolution order; start
// order within a stage follows it.
func (s *Scheduler) Run(ctx context.Context, targets []*model.Target) []*model.Assignment {
	defer close(s.events)
	logger := ctxlog.FromContext(ctx)

	stageA, stageB := partition(targets)
	logger.Info("🚀 Starting scheduling pipeline.", "stage_a_targets", len(stageA), "stage_b_targets", len(stageB))

	var assignments []*model.Assignment
	assignments = append(assignments, s.runStage(ctx, "A", stageA)...)
	// Stage B runs even when stage A had failures: model-level regressions
	// are independently informative. Only external cancellation stops it.
	assignments = append(assignments, s.runStage(ctx, "B", stageB)...)

	logger.Info("🏁 Scheduling pipeline finished.", "assignments", len(assignments))
	return assignments
}

// runStage dispatches the stage's targets in order and waits for every
// assignment to reach a terminal state before returning (the inter-stage
// barrier).
func (s *Scheduler) runStage(ctx context.Context, stage string, targets []*model.Target) []*model.Assignment {
	if len(targets) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx).With("stage", stage)
	logger.Debug("Stage dispatch started.", "targets", len(targets))

	var wg sync.WaitGroup
	assignments := make([]*model.Assignment, 0, len(targets))

	for _, target := range targets {
		a := model.NewAssignment(target, nil)
		assignments = append(assignments, a)

		// Cooperative cancellation point between assignments.
		if ctx.Err() != nil {
			a.Status = model.StatusSkipped
			a.Reason = model.ReasonAborted
			s.emit(ctx, a)
			continue
		}

		if len(s.registry.Compatible(target.Requires)) == 0 {
			logger.Error("No registered environment can run target.", "target", target.Name)
			a.Status = model.StatusFailed
			a.Reason = model.ReasonNoCompatibleEnvironment
			s.emit(ctx, a)
			continue
		}

		env := s.acquire(ctx, target.Requires)
		if env == nil {
			if ctx.Err() != nil {
				a.Status = model.StatusSkipped
				a.Reason = model.ReasonAborted
			} else {
				logger.Warn("Queue wait for a free environment elapsed, skipping target.",
					"target", target.Name, "waited", s.envWait)
				a.Status = model.StatusSkipped
				a.Reason = model.ReasonEnvironmentTimeout
			}
			s.emit(ctx, a)
			continue
		}

		a.Environment = env
		wg.Add(1)
		go func(a *model.Assignment) {
			defer wg.Done()
			s.exec.Execute(ctx, a)
			if err := s.locks.Release(a.Environment.ExclusivityKey); err != nil {
				logger.Error("Exclusion invariant violated on release.", "error", err)
			}
			s.registry.MarkFree(a.Environment.ID)
			s.emit(ctx, a)
		}(a)
	}

	wg.Wait()
	logger.Debug("Stage barrier reached, all assignments terminal.")
	return assignments
}

// acquire selects a free compatible environment, taking its exclusivity key.
// It retries with bounded backoff until the queue-wait deadline, a freed
// notification re-scans immediately. Returns nil on timeout or cancellation.
func (s *Scheduler) acquire(ctx context.Context, profile model.Profile) *model.Environment {
	deadline := time.Now().Add(s.envWait)
	backoff := acquireBackoffBase

	for {
		for _, env := range s.registry.Available(profile) {
			if s.locks.TryAcquire(env.ExclusivityKey) {
				s.registry.MarkBusy(env.ID)
				return env
			}
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}

		timer := time.NewTimer(min(backoff, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-s.registry.Freed():
			timer.Stop()
		case <-timer.C:
		}
		backoff = min(backoff*2, acquireBackoffMax)
	}
}

// emit streams a terminal assignment to the consumer. A cancelled context
// unblocks the send so teardown never hangs on an abandoned consumer.
func (s *Scheduler) emit(ctx context.Context, a *model.Assignment) {
	select {
	case s.events <- a:
	case <-ctx.Done():
	}
}

// partition splits targets into the two pipeline stages, preserving order:
// model-scope targets are the expensive second stage, everything else runs
// first.
func partition(targets []*model.Target) (stageA, stageB []*model.Target) {
	for _, t := range targets {
		if t.Scope == model.ScopeModels {
			stageB = append(stageB, t)
		} else {
			stageA = append(stageA, t)
		}
	}
	return stageA, stageB
}
