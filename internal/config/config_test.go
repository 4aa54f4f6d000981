package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROUNDTUTOR_DB", "")
	t.Setenv("ROUNDTUTOR_NO_COMPANION", "")
	t.Setenv("ROUNDTUTOR_SEED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.DBPath)
	assert.False(t, cfg.NoCompanion)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ROUNDTUTOR_DB", "/tmp/practice.db")
	t.Setenv("ROUNDTUTOR_NO_COMPANION", "true")
	t.Setenv("ROUNDTUTOR_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/practice.db", cfg.DBPath)
	assert.True(t, cfg.NoCompanion)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoadRejectsMalformedSeed(t *testing.T) {
	t.Setenv("ROUNDTUTOR_SEED", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
