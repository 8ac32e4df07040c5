package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jarvis-agents/internal/infra/config"
)

func TestNewTagsRecordsWithAppName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	app := config.AppConfig{Name: "concierge"}
	cfg := config.LoggerConfig{Level: "info", Format: "json", Output: path}
	log, closer, err := New(app, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info("started")
	if err := closer(); err != nil {
		t.Fatalf("closer: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("invalid JSON: %v, output: %s", err, data)
	}
	if entry["app"] != "concierge" {
		t.Errorf("app = %v, want %q", entry["app"], "concierge")
	}
	if entry["msg"] != "started" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestNewDebugOverridesLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	app := config.AppConfig{Name: "concierge", Debug: true}
	cfg := config.LoggerConfig{Level: "error", Format: "text", Output: path}
	log, closer, err := New(app, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Debug("debug detail")
	if err := closer(); err != nil {
		t.Fatalf("closer: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "debug detail") {
		t.Errorf("debug record filtered despite App.Debug: %q", data)
	}
}

func TestNewWithoutAppName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	log, closer, err := New(config.AppConfig{}, config.LoggerConfig{Format: "text", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("anonymous")
	if err := closer(); err != nil {
		t.Fatalf("closer: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "app=") {
		t.Errorf("unexpected app attribute: %q", data)
	}
}

func TestNewInvalidOutput(t *testing.T) {
	cfg := config.LoggerConfig{Level: "info", Format: "text", Output: "/nonexistent/dir/app.log"}
	if _, _, err := New(config.AppConfig{}, cfg); err == nil {
		t.Error("expected error for invalid output path")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer

	h := newHandler(&buf, "json", slog.LevelInfo)
	if _, ok := h.(*slog.JSONHandler); !ok {
		t.Errorf("newHandler(json) = %T", h)
	}
	h = newHandler(&buf, "text", slog.LevelInfo)
	if _, ok := h.(*slog.TextHandler); !ok {
		t.Errorf("newHandler(text) = %T", h)
	}
	h = newHandler(&buf, "", slog.LevelInfo)
	if _, ok := h.(*slog.TextHandler); !ok {
		t.Errorf("newHandler('') = %T", h)
	}
}

func TestOpenOutputStreams(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
		{"", os.Stderr},
	}
	for _, tt := range tests {
		w, closer, err := openOutput(tt.input)
		if err != nil {
			t.Fatalf("openOutput(%q): %v", tt.input, err)
		}
		defer closer()
		if w != tt.want {
			t.Errorf("openOutput(%q) = %v", tt.input, w)
		}
	}
}

func TestOpenOutputDiscard(t *testing.T) {
	w, closer, err := openOutput("discard")
	if err != nil {
		t.Fatalf("openOutput(discard): %v", err)
	}
	defer closer()
	if w != io.Discard {
		t.Error("expected io.Discard")
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	w, closer, err := openOutput(path)
	if err != nil {
		t.Fatalf("openOutput(file): %v", err)
	}
	if _, err := w.Write([]byte("test log line\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := closer(); err != nil {
		t.Fatalf("closer: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "test log line\n" {
		t.Errorf("file content = %q", data)
	}
}
