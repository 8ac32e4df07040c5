package config

import (
	"fmt"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateApp(cfg, ve)
	validateServer(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	validateHistory(cfg, ve)
	validateBatch(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateApp(cfg *Config, ve *ValidationError) {
	if cfg.App.Name == "" {
		ve.Add("app.name must not be empty")
	}
}

func validateServer(cfg *Config, ve *ValidationError) {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		ve.Add("server.port must be in 1..65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.RateLimitPerMin <= 0 {
		ve.Add("server.rate_limit_per_min must be > 0")
	}
	if cfg.Server.RateLimitBurst <= 0 {
		ve.Add("server.rate_limit_burst must be > 0")
	}
}

func validateLogger(cfg *Config, ve *ValidationError) {
	switch cfg.Logger.Level {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		ve.Add("logger.level %q is not one of debug, info, warn, error", cfg.Logger.Level)
	}
	switch cfg.Logger.Format {
	case "text", "json", "":
	default:
		ve.Add("logger.format %q is not one of text, json", cfg.Logger.Format)
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	switch cfg.Tracer.Exporter {
	case "stdout", "noop", "":
	default:
		ve.Add("tracer.exporter %q is not one of stdout, noop", cfg.Tracer.Exporter)
	}
}

func validateHistory(cfg *Config, ve *ValidationError) {
	if cfg.History.Path == "" {
		ve.Add("history.path must not be empty")
	}
	if cfg.History.SessionTTL <= 0 {
		ve.Add("history.session_ttl must be > 0")
	}
}

func validateBatch(cfg *Config, ve *ValidationError) {
	if cfg.Batch.Workers <= 0 {
		ve.Add("batch.workers must be > 0")
	}
}
