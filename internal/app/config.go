package app

import (
	"errors"
	"time"

	"github.com/specialistvlad/impactgridgo/internal/model"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath       string   // hcl files: environments + targets
	ImpactMapPaths []string // yaml impact-map manifests

	ChangedPaths  []string
	Scope         model.ScopeFilter
	SkipDirective bool
	FullRun       bool
	ResolveOnly   bool

	ReportPath    string // "" disables, "-" means stdout
	ReportURL     string
	LiveURL       string
	LiveNamespace string

	EnvWaitTimeout time.Duration
	TargetTimeout  time.Duration

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	if cfg.EnvWaitTimeout <= 0 {
		return nil, errors.New("EnvWaitTimeout must be positive")
	}

	return &cfg, nil
}
