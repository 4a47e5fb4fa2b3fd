package executor

import (
	"context"

	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Result is the raw outcome of one test-process invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner is the test-process interface: given a target and an environment
// descriptor, it synchronously produces an exit code and captured output.
// Provisioning the environment is an external concern and happens before
// scheduling begins.
type Runner interface {
	Run(ctx context.Context, target *model.Target, env *model.Environment) (*Result, error)
}
