package resolver

import (
	"context"
	"testing"

	"github.com/specialistvlad/impactgridgo/internal/impact"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) *Resolver {
	t.Helper()
	grid := model.NewGrid()
	grid.Targets["test-ops-a"] = &model.Target{
		Name: "test-ops-a", Scope: model.ScopeOps, Command: []string{"true"},
		Sources: []string{"fla/ops/a"},
	}
	grid.Targets["test-ops-b"] = &model.Target{
		Name: "test-ops-b", Scope: model.ScopeOps, Command: []string{"true"},
		Sources: []string{"fla/ops"},
	}
	grid.Targets["test-models-c"] = &model.Target{
		Name: "test-models-c", Scope: model.ScopeModels, Command: []string{"true"},
		Sources: []string{"fla/models", "fla/ops/a"},
	}

	graph, err := impact.BuildGraph(grid)
	require.NoError(t, err)
	return New(grid, graph)
}

func names(targets []*model.Target) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Name)
	}
	return out
}

func TestResolveEmptyChangedSet(t *testing.T) {
	r := newFixture(t)
	for _, filter := range []model.ScopeFilter{model.FilterAll, model.FilterExcludeModels, model.FilterModelsOnly} {
		assert.Empty(t, r.Resolve(context.Background(), nil, filter))
	}
}

func TestResolveOrdersAndDeduplicates(t *testing.T) {
	r := newFixture(t)

	// Both paths hit test-ops-b via the fla/ops prefix; the target must
	// appear once, and output is lexically ordered.
	changed := []string{"fla/ops/a/kernel.py", "fla/ops/b/kernel.py"}
	targets := r.Resolve(context.Background(), changed, model.FilterAll)
	assert.Equal(t, []string{"test-models-c", "test-ops-a", "test-ops-b"}, names(targets))
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newFixture(t)
	changed := []string{"fla/ops/a/x.py", "fla/models/m.py"}

	first := r.Resolve(context.Background(), changed, model.FilterAll)
	second := r.Resolve(context.Background(), changed, model.FilterAll)
	assert.Equal(t, names(first), names(second))
}

func TestResolveAppliesScopeFilter(t *testing.T) {
	r := newFixture(t)
	changed := []string{"fla/ops/a/x.py"}

	excluded := r.Resolve(context.Background(), changed, model.FilterExcludeModels)
	assert.Equal(t, []string{"test-ops-a", "test-ops-b"}, names(excluded))

	modelsOnly := r.Resolve(context.Background(), changed, model.FilterModelsOnly)
	assert.Equal(t, []string{"test-models-c"}, names(modelsOnly))
}

func TestResolveFullRunSentinel(t *testing.T) {
	r := newFixture(t)

	// The sentinel bypasses the graph entirely; an unknown path alongside
	// it changes nothing.
	targets := r.Resolve(context.Background(), []string{model.FullRunSentinel, "README.md"}, model.FilterAll)
	assert.Equal(t, []string{"test-models-c", "test-ops-a", "test-ops-b"}, names(targets))

	opsOnly := r.Resolve(context.Background(), []string{model.FullRunSentinel}, model.FilterExcludeModels)
	assert.Equal(t, []string{"test-ops-a", "test-ops-b"}, names(opsOnly))
}

func TestResolveUnknownPathsYieldNothing(t *testing.T) {
	r := newFixture(t)
	targets := r.Resolve(context.Background(), []string{"docs/guide.md"}, model.FilterAll)
	assert.Empty(t, targets)
}
