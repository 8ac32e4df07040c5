package tool

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type echoParams struct {
	Text string `json:"text"`
}

func TestExecuteSuccessString(t *testing.T) {
	result, err := Execute(context.Background(), "tool.echo", testLogger,
		json.RawMessage(`{"text":"hi"}`),
		func(_ context.Context, _ trace.Span, p echoParams) (any, error) {
			return p.Text, nil
		})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.IsError || result.Content != "hi" {
		t.Errorf("result = %+v", result)
	}
}

func TestExecuteMarshalsStructs(t *testing.T) {
	type out struct {
		N int `json:"n"`
	}
	result, err := Execute(context.Background(), "tool.count", testLogger,
		json.RawMessage(`{}`),
		func(_ context.Context, _ trace.Span, _ echoParams) (any, error) {
			return out{N: 3}, nil
		})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(result.Content, `"n": 3`) {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestExecuteHandlerError(t *testing.T) {
	result, err := Execute(context.Background(), "tool.fail", testLogger,
		json.RawMessage(`{}`),
		func(_ context.Context, _ trace.Span, _ echoParams) (any, error) {
			return nil, errors.New("boom")
		})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.IsError || result.Content != "boom" {
		t.Errorf("result = %+v", result)
	}
}

func TestExecuteInvalidParams(t *testing.T) {
	result, err := Execute(context.Background(), "tool.echo", testLogger,
		json.RawMessage(`{"text":`),
		func(_ context.Context, _ trace.Span, _ echoParams) (any, error) {
			t.Fatal("handler must not run on bad params")
			return nil, nil
		})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.IsError || !strings.Contains(result.Content, "invalid params") {
		t.Errorf("result = %+v", result)
	}
}

func TestDispatchRoutesActions(t *testing.T) {
	type params struct {
		Action string `json:"action"`
	}
	handler := Dispatch(func(p params) string { return p.Action }, ActionMap[params]{
		"ping": func(_ context.Context, _ params) (any, error) { return "pong", nil },
	})

	result, err := Execute(context.Background(), "tool.net", testLogger,
		json.RawMessage(`{"action":"ping"}`), handler)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Content != "pong" {
		t.Errorf("Content = %q", result.Content)
	}

	result, err = Execute(context.Background(), "tool.net", testLogger,
		json.RawMessage(`{"action":"warp"}`), handler)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.IsError || !strings.Contains(result.Content, `unknown action "warp"`) {
		t.Errorf("result = %+v", result)
	}
}
