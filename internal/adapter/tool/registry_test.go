package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"jarvis-agents/internal/domain"
)

// stubTool is a minimal tool for registry and validation tests.
type stubTool struct {
	name   string
	schema json.RawMessage
	result *domain.ToolResult
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{
		Name:        s.name,
		Description: "stub",
		Parameters:  s.schema,
	}
}
func (s *stubTool) Execute(_ context.Context, _ json.RawMessage) (*domain.ToolResult, error) {
	return s.result, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(&stubTool{name: "echo"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := r.Get("echo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name() != "echo" {
		t.Errorf("Name() = %q", got.Name())
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(&stubTool{name: "echo"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&stubTool{name: "echo"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.Get("missing"); !errors.Is(err, domain.ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

func TestRegistrySubset(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister(
		&stubTool{name: "a"},
		&stubTool{name: "b"},
		&stubTool{name: "c"},
	)

	sub, err := r.Subset([]string{"a", "c"})
	if err != nil {
		t.Fatalf("Subset: %v", err)
	}
	if len(sub.List()) != 2 {
		t.Errorf("len = %d, want 2", len(sub.List()))
	}
	if _, err := sub.Get("b"); !errors.Is(err, domain.ErrToolNotFound) {
		t.Errorf("b should not be in subset")
	}
}

func TestRegistrySubsetUnknownTool(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister(&stubTool{name: "a"})

	if _, err := r.Subset([]string{"a", "missing"}); !errors.Is(err, domain.ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

func TestRegistrySchemas(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister(&stubTool{name: "a"}, &stubTool{name: "b"})

	schemas := r.Schemas()
	if len(schemas) != 2 {
		t.Errorf("len = %d, want 2", len(schemas))
	}
}
