package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPort is the port a domain chat server binds when nothing overrides it.
const DefaultPort = 2337

// EnvConfigDir names the directory that agent YAML definitions are loaded from.
const EnvConfigDir = "JARVIS_AGENTS_CONFIG_DIR"

// AppConfig identifies the running domain application.
type AppConfig struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Debug       bool   `yaml:"debug"`
}

// ServerConfig holds the HTTP chat server settings.
type ServerConfig struct {
	Port            int `yaml:"port"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
	RateLimitBurst  int `yaml:"rate_limit_burst"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	Output string `yaml:"output"` // stdout, stderr, or a file path
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // "stdout" or "noop"
}

// AgentsConfig locates the YAML agent definitions.
type AgentsConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig holds transcript store settings.
type HistoryConfig struct {
	Path          string        `yaml:"path"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SweepSchedule string        `yaml:"sweep_schedule"` // cron expression
}

// BatchConfig holds batch invocation settings.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Config is the top-level application configuration shared by every domain.
// Domain packages read their own settings from the Domain map.
type Config struct {
	App     AppConfig         `yaml:"app"`
	Server  ServerConfig      `yaml:"server"`
	Logger  LoggerConfig      `yaml:"logger"`
	Tracer  TracerConfig      `yaml:"tracer"`
	Agents  AgentsConfig      `yaml:"agents"`
	History HistoryConfig     `yaml:"history"`
	Batch   BatchConfig       `yaml:"batch"`
	Domain  map[string]string `yaml:"domain,omitempty"`
}

// Defaults returns a Config with sensible defaults for a domain server.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:        "jarvis_agents",
			DisplayName: "Jarvis Agents",
			Description: "Jarvis Agents - Multi-agent AI Assistant Demo",
		},
		Server: ServerConfig{
			Port:            DefaultPort,
			RateLimitPerMin: 100,
			RateLimitBurst:  20,
		},
		Logger: LoggerConfig{Level: "info", Format: "text", Output: "stderr"},
		Tracer: TracerConfig{Enabled: false, Exporter: "noop"},
		Agents: AgentsConfig{Dir: "agent_configs"},
		History: HistoryConfig{
			Path:          "data/history.db",
			SessionTTL:    24 * time.Hour,
			SweepSchedule: "@hourly",
		},
		Batch: BatchConfig{Workers: 4},
	}
}

// Load reads the config file at path, merges env overrides and validates.
// A missing file is not an error: defaults plus env overrides are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps JARVIS_AGENTS_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvConfigDir); v != "" {
		cfg.Agents.Dir = v
	}
	if v := os.Getenv("JARVIS_AGENTS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JARVIS_AGENTS_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("JARVIS_AGENTS_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("JARVIS_AGENTS_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("JARVIS_AGENTS_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
	if v := os.Getenv("JARVIS_AGENTS_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("JARVIS_AGENTS_BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Batch.Workers = n
		}
	}
	if v := os.Getenv("JARVIS_AGENTS_DEBUG"); v == "true" {
		cfg.App.Debug = true
	}
}

// DomainValue returns a domain-specific setting, falling back to def when the
// key is absent or empty.
func (c *Config) DomainValue(key, def string) string {
	if v, ok := c.Domain[key]; ok && v != "" {
		return v
	}
	return def
}
