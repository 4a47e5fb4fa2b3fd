package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentSatisfies(t *testing.T) {
	env := &Environment{
		ID:              "nvidia-4090-0",
		HardwareClass:   "gpu",
		AcceleratorType: "nvidia",
		SoftwareProfile: []string{"cuda-12.4", "torch-2.4", "triton-3.0"},
	}

	t.Run("exact class and accelerator match", func(t *testing.T) {
		assert.True(t, env.Satisfies(Profile{HardwareClass: "gpu", AcceleratorType: "nvidia"}))
		assert.False(t, env.Satisfies(Profile{HardwareClass: "cpu"}))
		assert.False(t, env.Satisfies(Profile{HardwareClass: "gpu", AcceleratorType: "intel"}))
	})

	t.Run("software profile is a superset check", func(t *testing.T) {
		assert.True(t, env.Satisfies(Profile{SoftwareProfile: []string{"cuda-12.4"}}))
		assert.True(t, env.Satisfies(Profile{SoftwareProfile: []string{"torch-2.4", "triton-3.0"}}))
		assert.False(t, env.Satisfies(Profile{SoftwareProfile: []string{"cuda-11.8"}}))
	})

	t.Run("empty profile matches anything", func(t *testing.T) {
		assert.True(t, env.Satisfies(Profile{}))
	})
}

func TestGridTargetUniverseIsSorted(t *testing.T) {
	grid := NewGrid()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		grid.Targets[name] = &Target{Name: name, Scope: ScopeOps, Command: []string{"true"}}
	}

	universe := grid.TargetUniverse()
	assert.Equal(t, "alpha", universe[0].Name)
	assert.Equal(t, "mid", universe[1].Name)
	assert.Equal(t, "zeta", universe[2].Name)
}

func TestGridValidate(t *testing.T) {
	grid := NewGrid()
	grid.Environments["e1"] = &Environment{ID: "e1", HardwareClass: "cpu", ExclusivityKey: "e1"}
	grid.Targets["t1"] = &Target{Name: "t1", Scope: ScopeOps, Command: []string{"true"}}
	assert.NoError(t, grid.Validate())

	grid.Targets["t2"] = &Target{Name: "t2", Scope: ScopeOps}
	assert.ErrorContains(t, grid.Validate(), "command is required")
}
