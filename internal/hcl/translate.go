package hcl

import (
	"fmt"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/specialistvlad/impactgridgo/internal/schema"
)

// translateEnvironment converts the HCL-specific environment schema into the
// agnostic model. The exclusivity key defaults to the environment ID so that
// a plain declaration still gets one-runner-per-slot semantics.
func translateEnvironment(s *schema.Environment) *model.Environment {
	key := s.ExclusivityKey
	if key == "" {
		key = s.ID
	}
	return &model.Environment{
		ID:              s.ID,
		HardwareClass:   s.HardwareClass,
		AcceleratorType: s.AcceleratorType,
		SoftwareProfile: s.SoftwareProfile,
		ExclusivityKey:  key,
		Variables:       s.Variables,
	}
}

// translateTarget converts the HCL-specific target schema into the agnostic
// model, parsing the scope and the optional timeout.
func translateTarget(s *schema.Target) (*model.Target, error) {
	scope, err := model.ParseScope(s.Scope)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", s.Name, err)
	}

	var timeout time.Duration
	if s.Timeout != "" {
		timeout, err = time.ParseDuration(s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("target %q: invalid timeout %q: %w", s.Name, s.Timeout, err)
		}
	}

	target := &model.Target{
		Name:    s.Name,
		Scope:   scope,
		Command: s.Command,
		Sources: s.Sources,
		Timeout: timeout,
	}
	if s.Require != nil {
		target.Requires = model.Profile{
			HardwareClass:   s.Require.HardwareClass,
			AcceleratorType: s.Require.AcceleratorType,
			SoftwareProfile: s.Require.SoftwareProfile,
		}
	}
	return target, nil
}
