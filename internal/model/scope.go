package model

import "fmt"

// Scope classifies a target by cost and subject area. Every target belongs
// to exactly one scope.
type Scope string

const (
	// ScopeOps covers cheap, fast kernel/operator-level checks.
	ScopeOps Scope = "ops"
	// ScopeModels covers expensive model-level checks.
	ScopeModels Scope = "models"
	// ScopeOther covers everything that is neither ops nor models.
	ScopeOther Scope = "other"
)

// ParseScope validates a raw scope string from configuration.
func ParseScope(raw string) (Scope, error) {
	switch Scope(raw) {
	case ScopeOps, ScopeModels, ScopeOther:
		return Scope(raw), nil
	}
	return "", fmt.Errorf("unknown scope %q: must be 'ops', 'models' or 'other'", raw)
}

// ScopeFilter restricts which scopes a run considers.
type ScopeFilter int

const (
	// FilterAll admits every scope.
	FilterAll ScopeFilter = iota
	// FilterExcludeModels admits everything except model-level targets.
	FilterExcludeModels
	// FilterModelsOnly admits only model-level targets.
	FilterModelsOnly
)

// ParseScopeFilter maps the CLI spelling of a scope filter to its value.
func ParseScopeFilter(raw string) (ScopeFilter, error) {
	switch raw {
	case "all":
		return FilterAll, nil
	case "exclude-models":
		return FilterExcludeModels, nil
	case "models-only":
		return FilterModelsOnly, nil
	}
	return 0, fmt.Errorf("unknown scope filter %q: must be 'all', 'exclude-models' or 'models-only'", raw)
}

// Admits reports whether a target of the given scope passes the filter.
func (f ScopeFilter) Admits(s Scope) bool {
	switch f {
	case FilterExcludeModels:
		return s != ScopeModels
	case FilterModelsOnly:
		return s == ScopeModels
	default:
		return true
	}
}

// String returns the CLI spelling of the filter.
func (f ScopeFilter) String() string {
	switch f {
	case FilterExcludeModels:
		return "exclude-models"
	case FilterModelsOnly:
		return "models-only"
	default:
		return "all"
	}
}
