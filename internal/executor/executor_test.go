package executor

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignment(command []string) *model.Assignment {
	target := &model.Target{
		Name:    "test-unit",
		Scope:   model.ScopeOps,
		Command: command,
	}
	env := &model.Environment{
		ID:             "local-0",
		HardwareClass:  "cpu",
		ExclusivityKey: "local-0",
		Variables:      map[string]string{"IGGO_PROBE": "probe-value"},
	}
	return model.NewAssignment(target, env)
}

func TestExecutePassingProcess(t *testing.T) {
	exec := New(NewProcessRunner(), time.Minute)
	a := newAssignment([]string{"sh", "-c", "echo hello"})

	exec.Execute(context.Background(), a)

	assert.Equal(t, model.StatusPassed, a.Status)
	assert.Empty(t, string(a.Reason))
	assert.Zero(t, a.ExitCode)
	assert.Contains(t, string(a.Stdout), "hello")
	assert.False(t, a.StartedAt.IsZero())
	assert.GreaterOrEqual(t, a.Duration, time.Duration(0))
}

func TestExecuteFailingProcess(t *testing.T) {
	exec := New(NewProcessRunner(), time.Minute)
	a := newAssignment([]string{"sh", "-c", "echo boom >&2; exit 3"})

	exec.Execute(context.Background(), a)

	assert.Equal(t, model.StatusFailed, a.Status)
	assert.Equal(t, model.ReasonProcessFailure, a.Reason)
	assert.Equal(t, 3, a.ExitCode)
	assert.Contains(t, string(a.Stderr), "boom")
}

func TestExecuteTimeoutKillsProcess(t *testing.T) {
	exec := New(NewProcessRunner(), time.Minute)
	a := newAssignment([]string{"sh", "-c", "sleep 5"})
	a.Target.Timeout = 100 * time.Millisecond

	start := time.Now()
	exec.Execute(context.Background(), a)

	assert.Equal(t, model.StatusTimedOut, a.Status)
	assert.Equal(t, model.ReasonExecutionTimeout, a.Reason)
	assert.Less(t, time.Since(start), 3*time.Second, "process should be killed at the deadline, not awaited")
}

func TestExecuteMissingBinary(t *testing.T) {
	exec := New(NewProcessRunner(), time.Minute)
	a := newAssignment([]string{"definitely-not-a-real-binary-xyz"})

	exec.Execute(context.Background(), a)

	assert.Equal(t, model.StatusFailed, a.Status)
	assert.Equal(t, model.ReasonProcessFailure, a.Reason)
	assert.Equal(t, -1, a.ExitCode)
	assert.NotEmpty(t, a.Stderr)
}

func TestProcessRunnerInjectsEnvironmentVariables(t *testing.T) {
	runner := NewProcessRunner()
	a := newAssignment([]string{"sh", "-c", `test "$IGGO_PROBE" = probe-value`})

	result, err := runner.Run(context.Background(), a.Target, a.Environment)
	require.NoError(t, err)
	assert.Zero(t, result.ExitCode)
}

func TestExecuteUsesTargetTimeoutOverDefault(t *testing.T) {
	// Default would kill the sleep; the per-target override outlives it.
	exec := New(NewProcessRunner(), 50*time.Millisecond)
	a := newAssignment([]string{"sh", "-c", "sleep 0.2"})
	a.Target.Timeout = 5 * time.Second

	exec.Execute(context.Background(), a)
	assert.Equal(t, model.StatusPassed, a.Status)
}
