// Package impact holds the dependency graph between source paths and test
// targets. The graph is assembled once per run, from the `sources` attributes
// of the grid's targets plus any externally generated impact-map manifests,
// and is read-only afterwards.
package impact
