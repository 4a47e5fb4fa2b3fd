package config

import (
	"context"

	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, translates it into
	// the format-agnostic grid model and validates it.
	Load(ctx context.Context, paths ...string) (*model.Grid, error)
}
