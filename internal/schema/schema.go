// Package schema defines the HCL-facing structures of a grid file. These
// structs exist purely for decoding; the hcl package translates them into
// the format-agnostic model.
package schema

import "github.com/hashicorp/hcl/v2"

// Requires represents the content of the 'requires' block within a target.
type Requires struct {
	HardwareClass   string   `hcl:"hardware_class,optional"`
	AcceleratorType string   `hcl:"accelerator_type,optional"`
	SoftwareProfile []string `hcl:"software_profile,optional"`
}

// Environment represents an `environment` block from a user's grid file:
// one registered execution slot.
type Environment struct {
	ID              string            `hcl:"id,label"`
	HardwareClass   string            `hcl:"hardware_class"`
	AcceleratorType string            `hcl:"accelerator_type,optional"`
	SoftwareProfile []string          `hcl:"software_profile,optional"`
	ExclusivityKey  string            `hcl:"exclusivity_key,optional"`
	Variables       map[string]string `hcl:"variables,optional"`
}

// Target represents a `target` block from a user's grid file: one executable
// test unit.
type Target struct {
	Name    string    `hcl:"name,label"`
	Scope   string    `hcl:"scope"`
	Command []string  `hcl:"command"`
	Sources []string  `hcl:"sources,optional"`
	Require *Requires `hcl:"requires,block"`
	Timeout string    `hcl:"timeout,optional"`
}

// GridConfig represents the top-level structure of a grid file, containing
// all declared environments and targets.
type GridConfig struct {
	Environments []*Environment `hcl:"environment,block"`
	Targets      []*Target      `hcl:"target,block"`
	Body         hcl.Body       `hcl:",remain"`
}
