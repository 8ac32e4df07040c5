package tool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"jarvis-agents/internal/domain"
)

func TestSchemaValidation_ValidParams(t *testing.T) {
	inner := &stubTool{
		name: "test",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string"}
			},
			"required": ["name"]
		}`),
		result: &domain.ToolResult{Content: "ok"},
	}

	wrapped, err := WithSchemaValidation(inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := wrapped.Execute(context.Background(), json.RawMessage(`{"name":"alice"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Content)
	}
	if result.Content != "ok" {
		t.Errorf("expected 'ok', got %q", result.Content)
	}
}

func TestSchemaValidation_MissingRequired(t *testing.T) {
	inner := &stubTool{
		name: "test",
		schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string"}
			},
			"required": ["name"]
		}`),
		result: &domain.ToolResult{Content: "ok"},
	}

	wrapped, err := WithSchemaValidation(inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := wrapped.Execute(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for missing required field")
	}
	if !strings.Contains(result.Content, "schema validation failed") {
		t.Errorf("unexpected content: %q", result.Content)
	}
}

func TestSchemaValidation_InvalidJSON(t *testing.T) {
	inner := &stubTool{
		name:   "test",
		schema: json.RawMessage(`{"type": "object"}`),
		result: &domain.ToolResult{Content: "ok"},
	}

	wrapped, err := WithSchemaValidation(inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := wrapped.Execute(context.Background(), json.RawMessage(`{not json`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for malformed JSON")
	}
}

func TestSchemaValidation_NoSchemaPassthrough(t *testing.T) {
	inner := &stubTool{name: "test", result: &domain.ToolResult{Content: "ok"}}

	wrapped, err := WithSchemaValidation(inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrapped != domain.Tool(inner) {
		t.Error("tool without a schema should be returned unwrapped")
	}
}
