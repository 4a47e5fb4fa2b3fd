package executor

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Executor drives single assignments through the Runner with a hard
// wall-clock timeout.
type Executor struct {
	runner         Runner
	defaultTimeout time.Duration
}

// New creates an executor. defaultTimeout applies to targets without their
// own timeout; zero disables the deadline entirely.
func New(runner Runner, defaultTimeout time.Duration) *Executor {
	return &Executor{runner: runner, defaultTimeout: defaultTimeout}
}

// Execute runs the assignment to its terminal state, mutating it in place.
// The assignment must already be placed on an environment.
func (e *Executor) Execute(ctx context.Context, a *model.Assignment) {
	logger := ctxlog.FromContext(ctx).With("target", a.Target.Name, "environment", a.EnvironmentID())
	logger.Info("▶️ Starting target", "attempt", a.Attempt)

	timeout := a.Target.Timeout
	if timeout == 0 {
		timeout = e.defaultTimeout
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	a.StartedAt = time.Now()
	result, err := e.runner.Run(runCtx, a.Target, a.Environment)
	a.CompletedAt = time.Now()
	a.Duration = a.CompletedAt.Sub(a.StartedAt)

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		a.Status = model.StatusTimedOut
		a.Reason = model.ReasonExecutionTimeout
		if result != nil {
			a.Stdout, a.Stderr = result.Stdout, result.Stderr
			a.ExitCode = result.ExitCode
		}
		logger.Error("⏱️ Target timed out, process killed.", "timeout", timeout)
	case err != nil:
		a.Status = model.StatusFailed
		a.Reason = model.ReasonProcessFailure
		a.ExitCode = -1
		a.Stderr = []byte(err.Error())
		logger.Error("Target failed to execute.", "error", err)
	case result.ExitCode == 0:
		a.Status = model.StatusPassed
		a.Stdout, a.Stderr = result.Stdout, result.Stderr
		logger.Info("✅ Target passed.", "duration", a.Duration)
	default:
		a.Status = model.StatusFailed
		a.Reason = model.ReasonProcessFailure
		a.ExitCode = result.ExitCode
		a.Stdout, a.Stderr = result.Stdout, result.Stderr
		logger.Error("❌ Target failed.", "exit_code", result.ExitCode, "duration", a.Duration)
	}
}
