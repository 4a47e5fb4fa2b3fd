package model

import (
	"fmt"
	"sort"
)

// FullRunSentinel is the changed-path value that requests a non-incremental
// run: the resolver returns the full target universe for the active scope,
// bypassing the dependency graph.
const FullRunSentinel = "*"

// Grid is the unified, format-agnostic representation of the whole loaded
// configuration: every environment and every target declared across the
// grid files.
type Grid struct {
	Environments map[string]*Environment
	Targets      map[string]*Target
}

// NewGrid creates and returns an initialized, empty Grid.
func NewGrid() *Grid {
	return &Grid{
		Environments: make(map[string]*Environment),
		Targets:      make(map[string]*Target),
	}
}

// Validate checks the structural integrity of the grid after loading. It
// catches configuration mistakes before any scheduling happens.
func (g *Grid) Validate() error {
	for id, env := range g.Environments {
		if env.HardwareClass == "" {
			return fmt.Errorf("environment %q: hardware_class is required", id)
		}
		if env.ExclusivityKey == "" {
			return fmt.Errorf("environment %q: exclusivity key was not defaulted", id)
		}
	}
	for name, target := range g.Targets {
		if len(target.Command) == 0 {
			return fmt.Errorf("target %q: command is required and cannot be empty", name)
		}
		if _, err := ParseScope(string(target.Scope)); err != nil {
			return fmt.Errorf("target %q: %w", name, err)
		}
	}
	return nil
}

// TargetUniverse returns every declared target, sorted lexically by name so
// full runs schedule in a reproducible order.
func (g *Grid) TargetUniverse() []*Target {
	targets := make([]*Target, 0, len(g.Targets))
	for _, t := range g.Targets {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets
}
