package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jarvis-agents/internal/adapter/history"
	"jarvis-agents/internal/adapter/invoker"
	"jarvis-agents/internal/adapter/tool"
	"jarvis-agents/internal/agentcfg"
	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/usecase"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testAgentsYAML = `agents:
  - name: echo_agent
    description: Echoes prompts back.
    prompt_file: prompts/echo.md
    tools: [echo]
    batch_enabled: true
  - name: quiet_agent
    description: Not batch enabled.
    prompt_file: prompts/echo.md
`

type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "Echo text back." }
func (echoTool) Schema() domain.ToolSchema {
	return domain.ToolSchema{Name: "echo", Description: "Echo text back."}
}
func (echoTool) Execute(_ context.Context, params json.RawMessage) (*domain.ToolResult, error) {
	return &domain.ToolResult{Content: "echo: " + string(params)}, nil
}

// startTestServer wires the full local stack behind a server on a random port.
func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "prompts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompts", "echo.md"), []byte("You echo."), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, agentcfg.FileName), []byte(testAgentsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := agentcfg.Load(dir)
	if err != nil {
		t.Fatalf("load agents: %v", err)
	}

	registry := tool.NewRegistry(testLogger)
	if err := registry.Register(echoTool{}); err != nil {
		t.Fatal(err)
	}

	store, err := history.NewSQLiteStore(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions, err := usecase.NewSessionManager(store, time.Hour, "", testLogger)
	if err != nil {
		t.Fatal(err)
	}

	inv := invoker.NewLocal(meta, registry, testLogger, 2)
	chat := usecase.NewChat("testapp", meta, inv, sessions, testLogger)
	batch := usecase.NewBatch("testapp", meta, inv, testLogger)

	srv := NewServer(chat, batch, sessions, Options{Addr: "127.0.0.1:0"}, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		srv.Stop(stopCtx)
	})

	return srv, "http://" + srv.Addr()
}

func postJSON(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func getJSON(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func TestHealth(t *testing.T) {
	_, base := startTestServer(t)

	resp, raw := getJSON(t, base+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(raw), `"ok"`) {
		t.Errorf("body = %s", raw)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestChatRoundTrip(t *testing.T) {
	_, base := startTestServer(t)

	resp, raw := postJSON(t, base+"/api/v1/chat", chatRequest{
		Agent:   "echo_agent",
		Content: "hello there",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cr.SessionID == "" {
		t.Error("expected a minted session id")
	}
	if cr.Agent != "echo_agent" {
		t.Errorf("agent = %q", cr.Agent)
	}
	if !strings.Contains(cr.Content, "hello there") {
		t.Errorf("content = %q", cr.Content)
	}

	// Second turn in the same session.
	resp2, raw2 := postJSON(t, base+"/api/v1/chat", chatRequest{
		Agent:     "echo_agent",
		SessionID: cr.SessionID,
		Content:   "second turn",
	})
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp2.StatusCode, raw2)
	}

	hresp, hraw := getJSON(t, base+"/api/v1/history?session_id="+cr.SessionID)
	if hresp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d, body = %s", hresp.StatusCode, hraw)
	}
	var hist struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := json.Unmarshal(hraw, &hist); err != nil {
		t.Fatal(err)
	}
	if len(hist.Messages) != 4 {
		t.Fatalf("transcript length = %d, want 4", len(hist.Messages))
	}
	if hist.Messages[0].Role != domain.RoleUser || hist.Messages[1].Role != domain.RoleAssistant {
		t.Errorf("roles = %s, %s", hist.Messages[0].Role, hist.Messages[1].Role)
	}
}

func TestChatErrors(t *testing.T) {
	_, base := startTestServer(t)

	tests := []struct {
		name   string
		body   chatRequest
		status int
	}{
		{"unknown agent", chatRequest{Agent: "ghost", Content: "hi"}, http.StatusNotFound},
		{"empty content", chatRequest{Agent: "echo_agent"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := postJSON(t, base+"/api/v1/chat", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d, body = %s", resp.StatusCode, tt.status, raw)
			}
		})
	}

	resp, err := http.Post(base+"/api/v1/chat", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid JSON status = %d", resp.StatusCode)
	}

	gresp, err := http.Get(base + "/api/v1/chat")
	if err != nil {
		t.Fatal(err)
	}
	gresp.Body.Close()
	if gresp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET chat status = %d", gresp.StatusCode)
	}
}

func TestAgentsEndpoint(t *testing.T) {
	_, base := startTestServer(t)

	resp, raw := getJSON(t, base+"/api/v1/agents")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Agents []domain.AgentDef `json:"agents"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Agents) != 2 {
		t.Fatalf("agents = %d, want 2", len(body.Agents))
	}
	if body.Agents[0].Name != "echo_agent" {
		t.Errorf("first agent = %q", body.Agents[0].Name)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	_, base := startTestServer(t)

	// echo_agent has no output schema declared.
	resp, _ := getJSON(t, base+"/api/v1/schema?agent=echo_agent")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("schemaless agent status = %d", resp.StatusCode)
	}

	resp, _ = getJSON(t, base+"/api/v1/schema?agent=ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown agent status = %d", resp.StatusCode)
	}

	resp, _ = getJSON(t, base+"/api/v1/schema")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing agent param status = %d", resp.StatusCode)
	}
}

func TestBatchEndpoint(t *testing.T) {
	_, base := startTestServer(t)

	resp, raw := postJSON(t, base+"/api/v1/batch", batchRequest{
		Agent:   "echo_agent",
		Records: []string{"one", "two", "three"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var result domain.BatchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result.Total() != 3 {
		t.Errorf("total = %d", result.Total())
	}
	if len(result.Successes()) != 3 {
		t.Errorf("successes = %d", len(result.Successes()))
	}
	for i, rec := range result.Results {
		if rec.Index != i {
			t.Errorf("results out of order: index %d at position %d", rec.Index, i)
		}
	}
}

func TestBatchEndpointGate(t *testing.T) {
	_, base := startTestServer(t)

	resp, raw := postJSON(t, base+"/api/v1/batch", batchRequest{
		Agent:   "quiet_agent",
		Records: []string{"one"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, body = %s", resp.StatusCode, raw)
	}

	resp, _ = postJSON(t, base+"/api/v1/batch", batchRequest{Agent: "echo_agent"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty records status = %d", resp.StatusCode)
	}
}

func TestHistoryUnknownSession(t *testing.T) {
	_, base := startTestServer(t)

	resp, _ := getJSON(t, base+"/api/v1/history?session_id=nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestStartStop(t *testing.T) {
	srv, base := startTestServer(t)

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if _, err := http.Get(fmt.Sprintf("http://%s/health", srv.Addr())); err == nil {
		t.Error("expected request to stopped server to fail")
	}
}
