package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SIM_API_KEY", "test-key")
	path := writeConfig(t, "server:\n  port: \":9090\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Sim.APIKey)
	assert.Equal(t, "https://api.sim.dune.com", cfg.Sim.BaseURL)
	assert.Equal(t, int64(20000), cfg.Sim.RequestTimeoutMillis)
	assert.Equal(t, 8, cfg.Portfolio.MaxConcurrentWallets)
	assert.Equal(t, 25, cfg.Portfolio.ActivityLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadExplicitValues(t *testing.T) {
	t.Setenv("SIM_API_KEY", "test-key")
	path := writeConfig(t, `
sim:
  baseURL: "https://sim.example.test"
  requestTimeoutMillis: 5000
portfolio:
  maxConcurrentWallets: 3
  activityLimit: 10
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://sim.example.test", cfg.Sim.BaseURL)
	assert.Equal(t, int64(5000), cfg.Sim.RequestTimeoutMillis)
	assert.Equal(t, 3, cfg.Portfolio.MaxConcurrentWallets)
	assert.Equal(t, 10, cfg.Portfolio.ActivityLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("SIM_API_KEY", "")
	path := writeConfig(t, "server:\n  port: \":8080\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIM_API_KEY")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SIM_API_KEY", "test-key")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
