package impact

import (
	"fmt"
	"path"
	"strings"

	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Graph is a bipartite mapping from source path prefixes to the names of the
// targets that transitively depend on them. Lookups are monotonic: adding
// changed paths can only grow the affected-target set, never shrink it.
type Graph struct {
	// edges maps a normalized path prefix to the set of impacted targets.
	edges map[string]map[string]struct{}
}

// BuildGraph assembles the dependency graph for one run from the grid's
// declared target sources and any impact-map manifest files. Manifest edges
// naming a target that does not exist in the grid are a load error.
func BuildGraph(grid *model.Grid, manifestPaths ...string) (*Graph, error) {
	g := &Graph{edges: make(map[string]map[string]struct{})}

	for _, target := range grid.Targets {
		for _, source := range target.Sources {
			g.addEdge(source, target.Name)
		}
	}

	for _, manifestPath := range manifestPaths {
		manifest, err := loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		for _, edge := range manifest.Edges {
			for _, targetName := range edge.Targets {
				if _, ok := grid.Targets[targetName]; !ok {
					return nil, fmt.Errorf("impact map %s: edge for %q names unknown target %q",
						manifestPath, edge.Path, targetName)
				}
				g.addEdge(edge.Path, targetName)
			}
		}
	}

	return g, nil
}

// TargetsAffectedBy returns the names of every target impacted by at least
// one of the given changed paths. Paths with no known dependents contribute
// nothing; they are not an error.
func (g *Graph) TargetsAffectedBy(changedPaths []string) map[string]struct{} {
	affected := make(map[string]struct{})
	for _, changed := range changedPaths {
		normalized := normalizePath(changed)
		for prefix, targets := range g.edges {
			if !covers(prefix, normalized) {
				continue
			}
			for name := range targets {
				affected[name] = struct{}{}
			}
		}
	}
	return affected
}

func (g *Graph) addEdge(sourcePrefix, targetName string) {
	prefix := normalizePath(sourcePrefix)
	if prefix == "" {
		return
	}
	set, ok := g.edges[prefix]
	if !ok {
		set = make(map[string]struct{})
		g.edges[prefix] = set
	}
	set[targetName] = struct{}{}
}

// covers reports whether a changed path falls under an edge prefix: either
// an exact match or a descendant of the prefix directory.
func covers(prefix, changed string) bool {
	if prefix == changed {
		return true
	}
	return strings.HasPrefix(changed, prefix+"/")
}

func normalizePath(p string) string {
	cleaned := path.Clean(strings.TrimSpace(p))
	if cleaned == "." || cleaned == "/" {
		return ""
	}
	return strings.Trim(cleaned, "/")
}
