package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigRequiresGridPath(t *testing.T) {
	_, err := NewConfig(Config{EnvWaitTimeout: time.Minute})
	assert.ErrorContains(t, err, "GridPath is a required configuration field")
}

func TestNewConfigRequiresPositiveEnvWait(t *testing.T) {
	_, err := NewConfig(Config{GridPath: "grid.hcl"})
	assert.ErrorContains(t, err, "EnvWaitTimeout must be positive")

	_, err = NewConfig(Config{GridPath: "grid.hcl", EnvWaitTimeout: -time.Second})
	assert.ErrorContains(t, err, "EnvWaitTimeout must be positive")
}

func TestNewConfigAcceptsValidConfig(t *testing.T) {
	cfg, err := NewConfig(Config{
		GridPath:       "grid.hcl",
		EnvWaitTimeout: 10 * time.Minute,
		TargetTimeout:  0, // 0 disables the default execution timeout
	})
	require.NoError(t, err)
	assert.Equal(t, "grid.hcl", cfg.GridPath)
}
