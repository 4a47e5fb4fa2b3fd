// Package app wires the orchestrator together: it loads the grid, builds
// the dependency graph, populates the environment registry and drives one
// run end to end, from impact resolution through scheduling to the final
// verdict and its report sinks.
package app
