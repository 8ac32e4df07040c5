package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "jarvis_agents", cfg.App.Name)
	assert.Equal(t, 24*time.Hour, cfg.History.SessionTTL)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: billing
server:
  port: 9000
logger:
  level: debug
  format: json
domain:
  default_city: Paris
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "billing", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "Paris", cfg.DomainValue("default_city", "London"))

	// Untouched sections keep their defaults.
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "agent_configs", cfg.Agents.Dir)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JARVIS_AGENTS_PORT", "7000")
	t.Setenv("JARVIS_AGENTS_LOGGER_LEVEL", "warn")
	t.Setenv("JARVIS_AGENTS_TRACER_ENABLED", "true")
	t.Setenv("JARVIS_AGENTS_TRACER_EXPORTER", "stdout")
	t.Setenv("JARVIS_AGENTS_HISTORY_PATH", "/tmp/h.db")
	t.Setenv("JARVIS_AGENTS_BATCH_WORKERS", "8")
	t.Setenv(EnvConfigDir, "/etc/agents")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.True(t, cfg.Tracer.Enabled)
	assert.Equal(t, "stdout", cfg.Tracer.Exporter)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "/etc/agents", cfg.Agents.Dir)
}

func TestEnvOverrideIgnoresBadPort(t *testing.T) {
	t.Setenv("JARVIS_AGENTS_PORT", "not-a-number")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.App.Name = ""
	cfg.Server.Port = 0
	cfg.Logger.Level = "loud"
	cfg.Tracer.Exporter = "jaeger"
	cfg.History.Path = ""
	cfg.Batch.Workers = 0

	err := Validate(cfg)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Len(t, ve.Errors, 6)
}

func TestDomainValue(t *testing.T) {
	cfg := Defaults()
	cfg.Domain = map[string]string{"default_city": "Paris", "empty": ""}

	assert.Equal(t, "Paris", cfg.DomainValue("default_city", "London"))
	assert.Equal(t, "London", cfg.DomainValue("missing", "London"))
	assert.Equal(t, "London", cfg.DomainValue("empty", "London"))
}
