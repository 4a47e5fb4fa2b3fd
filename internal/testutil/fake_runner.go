package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/executor"
	"github.com/specialistvlad/impactgridgo/internal/model"
)

// FakeCall records one invocation of the fake runner.
type FakeCall struct {
	Target      string
	Environment string
	Key         string
	Start       time.Time
	End         time.Time
}

// FakeRunner is a scriptable executor.Runner for tests. It records every
// call with timestamps and tracks in-flight concurrency per exclusivity key
// so tests can verify the mutual-exclusion invariant.
type FakeRunner struct {
	// Delay simulates execution time before the fake process "exits".
	Delay time.Duration
	// ExitCodes maps target names to exit codes; absent targets exit 0.
	ExitCodes map[string]int

	mu          sync.Mutex
	calls       []FakeCall
	inflight    map[string]int
	maxInflight map[string]int
}

// NewFakeRunner creates a fake runner with no delay and all-passing targets.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		ExitCodes:   make(map[string]int),
		inflight:    make(map[string]int),
		maxInflight: make(map[string]int),
	}
}

// Run implements executor.Runner.
func (f *FakeRunner) Run(ctx context.Context, target *model.Target, env *model.Environment) (*executor.Result, error) {
	f.mu.Lock()
	call := FakeCall{
		Target:      target.Name,
		Environment: env.ID,
		Key:         env.ExclusivityKey,
		Start:       time.Now(),
	}
	f.inflight[env.ExclusivityKey]++
	if f.inflight[env.ExclusivityKey] > f.maxInflight[env.ExclusivityKey] {
		f.maxInflight[env.ExclusivityKey] = f.inflight[env.ExclusivityKey]
	}
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(f.Delay):
		}
	}

	f.mu.Lock()
	f.inflight[env.ExclusivityKey]--
	call.End = time.Now()
	f.calls = append(f.calls, call)
	exitCode := f.ExitCodes[target.Name]
	f.mu.Unlock()

	return &executor.Result{
		ExitCode: exitCode,
		Stdout:   []byte("fake output"),
	}, nil
}

// Calls returns a copy of all recorded invocations.
func (f *FakeRunner) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}

// CallsFor returns the recorded invocations for one target name.
func (f *FakeRunner) CallsFor(target string) []FakeCall {
	var matched []FakeCall
	for _, c := range f.Calls() {
		if c.Target == target {
			matched = append(matched, c)
		}
	}
	return matched
}

// MaxInflight reports the highest observed concurrency for an exclusivity key.
func (f *FakeRunner) MaxInflight(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInflight[key]
}
