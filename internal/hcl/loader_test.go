package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

const validGrid = `
environment "nvidia-0" {
  hardware_class   = "gpu"
  accelerator_type = "nvidia"
  software_profile = ["cuda-12.4", "torch-2.4"]
  exclusivity_key  = "gpu-bus-0"
  variables = {
    CUDA_VISIBLE_DEVICES = "0"
  }
}

environment "cpu-0" {
  hardware_class = "cpu"
}

target "test-ops-attn" {
  scope   = "ops"
  command = ["pytest", "tests/ops/test_attn.py"]
  sources = ["fla/ops/attn"]
  timeout = "15m"

  requires {
    accelerator_type = "nvidia"
  }
}

target "test-models-transformer" {
  scope   = "models"
  command = ["pytest", "tests/models"]
  sources = ["fla/models"]
}
`

func TestLoadTranslatesGrid(t *testing.T) {
	dir := writeGrid(t, map[string]string{"grid.hcl": validGrid})

	grid, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, grid.Environments, 2)
	require.Len(t, grid.Targets, 2)

	env := grid.Environments["nvidia-0"]
	require.NotNil(t, env)
	assert.Equal(t, "gpu", env.HardwareClass)
	assert.Equal(t, "nvidia", env.AcceleratorType)
	assert.Equal(t, "gpu-bus-0", env.ExclusivityKey)
	assert.Equal(t, "0", env.Variables["CUDA_VISIBLE_DEVICES"])

	// No explicit exclusivity key falls back to the environment ID.
	assert.Equal(t, "cpu-0", grid.Environments["cpu-0"].ExclusivityKey)

	target := grid.Targets["test-ops-attn"]
	require.NotNil(t, target)
	assert.Equal(t, model.ScopeOps, target.Scope)
	assert.Equal(t, 15*time.Minute, target.Timeout)
	assert.Equal(t, "nvidia", target.Requires.AcceleratorType)

	noReq := grid.Targets["test-models-transformer"]
	assert.Equal(t, model.ScopeModels, noReq.Scope)
	assert.Zero(t, noReq.Timeout)
	assert.Empty(t, noReq.Requires.HardwareClass)
}

func TestLoadMergesMultipleFiles(t *testing.T) {
	dir := writeGrid(t, map[string]string{
		"envs.hcl": `
environment "cpu-0" {
  hardware_class = "cpu"
}`,
		"targets.hcl": `
target "test-ops-a" {
  scope   = "ops"
  command = ["true"]
}`,
	})

	grid, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, grid.Environments, 1)
	assert.Len(t, grid.Targets, 1)
}

func TestLoadRejectsDuplicateDeclarations(t *testing.T) {
	dir := writeGrid(t, map[string]string{
		"a.hcl": `
environment "cpu-0" {
  hardware_class = "cpu"
}
target "test-ops-a" {
  scope   = "ops"
  command = ["true"]
}`,
		"b.hcl": `
environment "cpu-0" {
  hardware_class = "cpu"
}`,
	})

	_, err := NewLoader().Load(context.Background(), dir)
	assert.ErrorContains(t, err, `duplicate environment "cpu-0"`)
}

func TestLoadRejectsUnknownScope(t *testing.T) {
	dir := writeGrid(t, map[string]string{"grid.hcl": `
environment "cpu-0" {
  hardware_class = "cpu"
}
target "test-bad" {
  scope   = "kernels"
  command = ["true"]
}`})

	_, err := NewLoader().Load(context.Background(), dir)
	assert.ErrorContains(t, err, "unknown scope")
}

func TestLoadRejectsMalformedTimeout(t *testing.T) {
	dir := writeGrid(t, map[string]string{"grid.hcl": `
environment "cpu-0" {
  hardware_class = "cpu"
}
target "test-bad" {
  scope   = "ops"
  command = ["true"]
  timeout = "fifteen minutes"
}`})

	_, err := NewLoader().Load(context.Background(), dir)
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestLoadRejectsInvalidSyntax(t *testing.T) {
	dir := writeGrid(t, map[string]string{"grid.hcl": `environment "x" {`})

	_, err := NewLoader().Load(context.Background(), dir)
	assert.ErrorContains(t, err, "failed to parse HCL file")
}

func TestLoadEvaluatesHostEnvExpressions(t *testing.T) {
	t.Setenv("IGGO_TEST_DEVICE", "3")

	dir := writeGrid(t, map[string]string{"grid.hcl": `
environment "gpu-host" {
  hardware_class = "gpu"
  variables = {
    CUDA_VISIBLE_DEVICES = env.IGGO_TEST_DEVICE
  }
}
target "test-ops-a" {
  scope   = "ops"
  command = ["true"]
}`})

	grid, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "3", grid.Environments["gpu-host"].Variables["CUDA_VISIBLE_DEVICES"])
}

func TestLoadSingleFilePath(t *testing.T) {
	dir := writeGrid(t, map[string]string{"grid.hcl": validGrid})

	grid, err := NewLoader().Load(context.Background(), filepath.Join(dir, "grid.hcl"))
	require.NoError(t, err)
	assert.Len(t, grid.Targets, 2)
}
