package model

import "time"

// Profile declares the execution requirements of a target. HardwareClass and
// AcceleratorType are matched exactly against an environment; SoftwareProfile
// entries must all be present in the environment's installed profile.
type Profile struct {
	HardwareClass   string
	AcceleratorType string
	SoftwareProfile []string
}

// Target is a single executable test unit.
type Target struct {
	// Name uniquely keys the target across the whole grid.
	Name string
	// Scope classifies the target for filtering and stage partitioning.
	Scope Scope
	// Command is the argv the test-process runner executes.
	Command []string
	// Sources lists source path prefixes whose changes impact this target.
	// They feed the dependency graph alongside any external impact maps.
	Sources []string
	// Requires constrains which environments may run the target.
	Requires Profile
	// Timeout overrides the run-wide execution timeout when non-zero.
	Timeout time.Duration
}
