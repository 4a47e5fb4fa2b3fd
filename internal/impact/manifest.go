package impact

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk format of an impact map produced by out-of-band
// static analysis tooling.
type Manifest struct {
	Edges []ManifestEdge `yaml:"edges"`
}

// ManifestEdge maps one source path prefix to the targets it impacts.
type ManifestEdge struct {
	Path    string   `yaml:"path"`
	Targets []string `yaml:"targets"`
}

// loadManifest reads and decodes a single YAML impact-map file.
func loadManifest(manifestPath string) (*Manifest, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read impact map %s: %w", manifestPath, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode impact map %s: %w", manifestPath, err)
	}

	for i, edge := range manifest.Edges {
		if edge.Path == "" {
			return nil, fmt.Errorf("impact map %s: edge %d has an empty path", manifestPath, i)
		}
	}
	return &manifest, nil
}
