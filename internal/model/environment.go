package model

// Environment is a concrete execution context: one registered slot of
// hardware plus its installed software profile.
type Environment struct {
	// ID uniquely keys the environment across the grid.
	ID string
	// HardwareClass is the coarse hardware category, e.g. "gpu" or "cpu".
	HardwareClass string
	// AcceleratorType names the accelerator vendor/family, e.g. "nvidia".
	AcceleratorType string
	// SoftwareProfile lists the toolkit/framework versions installed.
	SoftwareProfile []string
	// ExclusivityKey identifies the physical resource behind this
	// environment. At most one running assignment may hold a key at a time.
	// Defaults to the environment ID when the configuration omits it.
	ExclusivityKey string
	// Variables are injected into the test process, e.g. device pinning.
	Variables map[string]string
}

// Satisfies reports whether the environment can run a target with the given
// profile: exact match on hardware class and accelerator type, superset
// check on the software profile.
func (e *Environment) Satisfies(p Profile) bool {
	if p.HardwareClass != "" && e.HardwareClass != p.HardwareClass {
		return false
	}
	if p.AcceleratorType != "" && e.AcceleratorType != p.AcceleratorType {
		return false
	}
	for _, want := range p.SoftwareProfile {
		if !containsString(e.SoftwareProfile, want) {
			return false
		}
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
