package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, _, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, time.Second, cfg.Auth.SimulatedLatency)
	assert.Equal(t, 1500*time.Millisecond, cfg.Auth.VerificationLatency)
	assert.Equal(t, 500*time.Millisecond, cfg.Auth.UsernameCheckLatency)
	assert.Equal(t, "mock", cfg.Auth.Verifier)
	assert.Equal(t, 24*time.Hour, cfg.Session.Expiry)
}

func TestLoadFromFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))

	yaml := []byte(`
server:
  port: "9000"
database:
  driver: memory
auth:
  simulated_latency: 250ms
  verifier: code
`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), yaml, 0o644))

	cfg, _, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Auth.SimulatedLatency)
	assert.Equal(t, "code", cfg.Auth.Verifier)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.Server.RateLimitBurst)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NEUROTRACKER_SERVER_PORT", "7070")
	t.Setenv("NEUROTRACKER_LOGGING_LEVEL", "debug")

	cfg, _, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("NEUROTRACKER_ENV", "production")

	_, _, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrDefaultSecret)

	t.Setenv("NEUROTRACKER_SESSION_SECRET", "a-real-secret")
	cfg, _, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadInvalidFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, _, err := Load(root)
	assert.Error(t, err)
}
