package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/fsutil"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/specialistvlad/impactgridgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL configuration loading process. It is
// agnostic to the origin of the paths and merges every environment and
// target block found in any file into one grid model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Grid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var gridFiles []string
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find grid files in %s: %w", path, err)
		}
		gridFiles = append(gridFiles, files...)
	}
	logger.Debug("Discovered grid files.", "count", len(gridFiles))

	grid := model.NewGrid()
	parser := hclparse.NewParser()
	evalCtx := buildEvalContext()

	for _, file := range gridFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.GridConfig
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, rawEnv := range root.Environments {
			env := translateEnvironment(rawEnv)
			if _, exists := grid.Environments[env.ID]; exists {
				return nil, fmt.Errorf("duplicate environment %q declared in %s", env.ID, file)
			}
			grid.Environments[env.ID] = env
		}
		for _, rawTarget := range root.Targets {
			target, err := translateTarget(rawTarget)
			if err != nil {
				return nil, fmt.Errorf("invalid target in %s: %w", file, err)
			}
			if _, exists := grid.Targets[target.Name]; exists {
				return nil, fmt.Errorf("duplicate target %q declared in %s", target.Name, file)
			}
			grid.Targets[target.Name] = target
		}
	}

	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("grid validation failed: %w", err)
	}

	logger.Debug("Configuration loaded and translated into unified model.",
		"environments", len(grid.Environments), "targets", len(grid.Targets))
	return grid, nil
}

// buildEvalContext exposes host environment variables to grid expressions
// under the `env` object, so host-specific values like device indices or
// tokens never need to be hardcoded in grid files.
func buildEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}
