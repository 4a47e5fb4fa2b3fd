// Package model defines the format-agnostic domain types of the orchestrator:
// the grid of execution environments and test targets loaded from
// configuration, and the run-time records (assignments, verdicts) produced
// while scheduling and executing targets.
//
// The model is the single source of truth for the resolver, registry and
// scheduler packages. It carries no HCL or YAML details; format-specific
// loaders translate into it.
package model
