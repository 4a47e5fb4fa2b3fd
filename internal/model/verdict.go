package model

import "github.com/google/uuid"

// OverallStatus is the aggregate outcome of a run.
type OverallStatus string

const (
	// AllPassed: every assignment passed.
	AllPassed OverallStatus = "allPassed"
	// PartialFailure: at least one assignment failed or timed out.
	PartialFailure OverallStatus = "partialFailure"
	// AllSkipped: every assignment was skipped, including the
	// zero-assignment case.
	AllSkipped OverallStatus = "allSkipped"
	// Aborted: the run was cancelled and the pending targets never ran.
	Aborted OverallStatus = "aborted"
)

// Success reports whether the status maps to a zero exit code.
func (s OverallStatus) Success() bool {
	return s == AllPassed || s == AllSkipped
}

// RunVerdict is the immutable aggregate over all assignments of one run.
type RunVerdict struct {
	RunID       string
	Overall     OverallStatus
	Assignments []*Assignment
	// Failing lists the names of targets with a failed or timedOut
	// terminal state, in assignment order.
	Failing []string
}

// NewRunID mints the identifier shared by all assignments of one invocation.
func NewRunID() string {
	return uuid.NewString()
}
