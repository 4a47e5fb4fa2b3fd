package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/model"
)

// ProcessRunner is the shipped Runner implementation: it executes the
// target's command as a local child process with the environment's
// variables injected.
type ProcessRunner struct{}

// NewProcessRunner creates a runner for local child processes.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run executes the target command. A context expiry kills the process; the
// kill grace period keeps a stuck process from leaking past the deadline.
func (r *ProcessRunner) Run(ctx context.Context, target *model.Target, env *model.Environment) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("target", target.Name, "environment", env.ID)
	logger.Debug("Spawning test process.", "command", target.Command)

	cmd := exec.CommandContext(ctx, target.Command[0], target.Command[1:]...)
	cmd.Env = os.Environ()
	for key, value := range env.Variables {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// The process never ran (missing binary, permissions, ...).
		return nil, fmt.Errorf("failed to run test process for target %q: %w", target.Name, err)
	}

	// Nonzero exit (including a timeout kill) is a normal outcome here;
	// the executor classifies it.
	return &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
