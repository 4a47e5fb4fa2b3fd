package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus is the terminal state of one scheduled target.
type AssignmentStatus string

const (
	// StatusPassed means the test process exited zero.
	StatusPassed AssignmentStatus = "passed"
	// StatusFailed means the test process exited nonzero, or the target
	// could not be placed on any compatible environment.
	StatusFailed AssignmentStatus = "failed"
	// StatusTimedOut means the test process was killed at its deadline.
	StatusTimedOut AssignmentStatus = "timedOut"
	// StatusSkipped means the target never executed.
	StatusSkipped AssignmentStatus = "skipped"
)

// FailureReason explains a non-passed terminal state.
type FailureReason string

const (
	// ReasonNoCompatibleEnvironment: no registered environment, busy or
	// free, can ever satisfy the target's profile.
	ReasonNoCompatibleEnvironment FailureReason = "NoCompatibleEnvironment"
	// ReasonEnvironmentTimeout: the queue wait for a free compatible
	// environment elapsed.
	ReasonEnvironmentTimeout FailureReason = "EnvironmentTimeout"
	// ReasonExecutionTimeout: the wall-clock execution deadline elapsed.
	ReasonExecutionTimeout FailureReason = "ExecutionTimeout"
	// ReasonProcessFailure: the test process exited nonzero.
	ReasonProcessFailure FailureReason = "ProcessFailure"
	// ReasonAborted: the run was short-circuited before the stage started.
	ReasonAborted FailureReason = "AbortedByDirective"
)

// Assignment binds one target to one environment for one attempt and records
// its terminal outcome. Environment is nil when the target was never placed
// (NoCompatibleEnvironment, EnvironmentTimeout, abort).
type Assignment struct {
	ID          string
	Target      *Target
	Environment *Environment
	Attempt     int

	Status   AssignmentStatus
	Reason   FailureReason
	ExitCode int
	Stdout   []byte
	Stderr   []byte

	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

// NewAssignment creates a first-attempt assignment for a target. The
// environment may be nil until the scheduler places it.
func NewAssignment(target *Target, env *Environment) *Assignment {
	return &Assignment{
		ID:          uuid.NewString(),
		Target:      target,
		Environment: env,
		Attempt:     1,
	}
}

// Terminal reports whether the assignment has reached a terminal state.
func (a *Assignment) Terminal() bool {
	return a.Status != ""
}

// EnvironmentID returns the placed environment's ID, or "" when unplaced.
func (a *Assignment) EnvironmentID() string {
	if a.Environment == nil {
		return ""
	}
	return a.Environment.ID
}
