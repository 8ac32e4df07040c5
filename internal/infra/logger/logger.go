// Package logger builds the slog logger every domain binary logs through.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"jarvis-agents/internal/infra/config"
)

// New creates the configured *slog.Logger for one domain application. Every
// record carries the app name, and App.Debug lowers the level to debug no
// matter what the logger config says. The returned closer should be deferred
// to flush file handles.
func New(app config.AppConfig, cfg config.LoggerConfig) (*slog.Logger, func() error, error) {
	writer, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}

	level := parseLevel(cfg.Level)
	if app.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(newHandler(writer, cfg.Format, level))
	if app.Name != "" {
		log = log.With("app", app.Name)
	}
	return log, closer, nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts a string level to slog.Level. Unknown levels fall back
// to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openOutput returns an io.Writer for the configured output target. "discard"
// suppresses logging entirely; anything that is not a stream name is opened
// as an append-mode file.
func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, noop, nil
	case "stderr", "":
		return os.Stderr, noop, nil
	case "discard":
		return io.Discard, noop, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
}
