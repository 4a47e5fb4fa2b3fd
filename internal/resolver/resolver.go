// Package resolver computes the ordered set of test targets a run must
// execute, from the changed-path set and the dependency graph.
package resolver

import (
	"context"
	"sort"

	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/impact"
	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Resolver answers "which targets must run" for one grid and one dependency
// graph. It holds no mutable state; resolving the same inputs twice yields
// identical ordered output.
type Resolver struct {
	grid  *model.Grid
	graph *impact.Graph
}

// New creates a resolver over a loaded grid and its dependency graph.
func New(grid *model.Grid, graph *impact.Graph) *Resolver {
	return &Resolver{grid: grid, graph: graph}
}

// Resolve returns the ordered list of targets impacted by the changed paths,
// restricted to the scope filter. An empty changed-path set resolves to an
// empty list, which is success: nothing to test. The full-run sentinel among
// the changed paths selects the whole target universe for the scope,
// bypassing the graph.
func (r *Resolver) Resolve(ctx context.Context, changedPaths []string, filter model.ScopeFilter) []*model.Target {
	logger := ctxlog.FromContext(ctx)

	if fullRunRequested(changedPaths) {
		targets := r.filterTargets(r.grid.TargetUniverse(), filter)
		logger.Debug("Full run requested, selecting entire target universe.",
			"scope", filter.String(), "targets", len(targets))
		return targets
	}

	affected := r.graph.TargetsAffectedBy(changedPaths)
	targets := make([]*model.Target, 0, len(affected))
	for name := range affected {
		// Affected names always come from the grid; the graph builder
		// rejects unknown targets at load time.
		targets = append(targets, r.grid.Targets[name])
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })

	targets = r.filterTargets(targets, filter)
	logger.Debug("Impact resolution finished.",
		"changed_paths", len(changedPaths), "scope", filter.String(), "targets", len(targets))
	return targets
}

// filterTargets keeps only targets admitted by the scope filter, preserving
// order.
func (r *Resolver) filterTargets(targets []*model.Target, filter model.ScopeFilter) []*model.Target {
	kept := make([]*model.Target, 0, len(targets))
	for _, t := range targets {
		if filter.Admits(t.Scope) {
			kept = append(kept, t)
		}
	}
	return kept
}

func fullRunRequested(changedPaths []string) bool {
	for _, p := range changedPaths {
		if p == model.FullRunSentinel {
			return true
		}
	}
	return false
}
