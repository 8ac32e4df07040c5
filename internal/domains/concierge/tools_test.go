package concierge

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/infra/config"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r := tool.NewRegistry(testLogger)
	if err := RegisterTools(r, config.Defaults(), testLogger); err != nil {
		t.Fatalf("RegisterTools: %v", err)
	}
	return r
}

func exec(t *testing.T, r *tool.Registry, name, params string) string {
	t.Helper()
	tl, err := r.Get(name)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	res, err := tl.Execute(context.Background(), json.RawMessage(params))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if res.IsError {
		t.Fatalf("%s returned error result: %s", name, res.Content)
	}
	return res.Content
}

func TestRegisterToolsDomainOverrides(t *testing.T) {
	cfg := config.Defaults()
	cfg.Domain = map[string]string{"default_city": "Tokyo"}
	r := tool.NewRegistry(testLogger)
	if err := RegisterTools(r, cfg, testLogger); err != nil {
		t.Fatalf("RegisterTools: %v", err)
	}
	out := exec(t, r, "get_weather", `{}`)
	if !strings.Contains(out, "Tokyo") {
		t.Errorf("expected configured default city in %q", out)
	}
}

func TestRegisterTools(t *testing.T) {
	r := newRegistry(t)
	for _, name := range []string{"tell_joke", "get_joke_categories", "get_weather", "get_forecast", "validate_email"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("tool %q not registered: %v", name, err)
		}
	}
}

func TestTellJokeTool(t *testing.T) {
	r := newRegistry(t)

	out := exec(t, r, "tell_joke", `{"category":"programming"}`)
	if !strings.Contains(out, "Category: programming") || !strings.Contains(out, "/5)") {
		t.Errorf("output = %q", out)
	}

	// Empty category falls back to the default.
	out = exec(t, r, "tell_joke", `{}`)
	if !strings.Contains(out, "Category: "+DefaultJokeCategory) {
		t.Errorf("output = %q", out)
	}
}

func TestTellJokeToolInvalidCategory(t *testing.T) {
	r := newRegistry(t)
	tl, _ := r.Get("tell_joke")

	res, err := tl.Execute(context.Background(), json.RawMessage(`{"category":"nope"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatalf("expected error result, got %q", res.Content)
	}
	if !strings.Contains(res.Content, "get_joke_categories") {
		t.Errorf("error should hint at get_joke_categories: %q", res.Content)
	}
}

func TestJokeCategoriesTool(t *testing.T) {
	r := newRegistry(t)
	out := exec(t, r, "get_joke_categories", `{}`)
	if !strings.HasPrefix(out, "Available joke categories: ") {
		t.Errorf("output = %q", out)
	}
	for _, c := range []string{"programming", "general", "knock-knock", "dad-joke"} {
		if !strings.Contains(out, c) {
			t.Errorf("category %q missing: %q", c, out)
		}
	}
}

func TestWeatherTool(t *testing.T) {
	r := newRegistry(t)

	out := exec(t, r, "get_weather", `{"location":"Tokyo"}`)
	if out != "Weather in Tokyo: Clear, 18°C" {
		t.Errorf("output = %q", out)
	}

	// Empty location falls back to the default city.
	out = exec(t, r, "get_weather", `{}`)
	if !strings.Contains(out, DefaultCity) {
		t.Errorf("output = %q", out)
	}
}

func TestForecastTool(t *testing.T) {
	r := newRegistry(t)

	out := exec(t, r, "get_forecast", `{"location":"Miami","days":2}`)
	if !strings.HasPrefix(out, "Weather forecast for Miami:") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Day 1:") || !strings.Contains(out, "Day 2:") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Day 3:") {
		t.Errorf("asked for 2 days, got more: %q", out)
	}
}
