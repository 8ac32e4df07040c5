package domain

import "context"

// AgentDef describes one YAML-declared agent. The agent execution engine is
// external; this repository only declares agents and hands them to an
// AgentInvoker.
type AgentDef struct {
	Name         string            `yaml:"name"          json:"name"`
	Description  string            `yaml:"description"   json:"description"`
	PromptFile   string            `yaml:"prompt_file"   json:"prompt_file,omitempty"`
	Model        string            `yaml:"model"         json:"model,omitempty"`
	Tools        []string          `yaml:"tools"         json:"tools,omitempty"`
	Handoffs     []string          `yaml:"handoffs"      json:"handoffs,omitempty"`
	BatchEnabled bool              `yaml:"batch_enabled" json:"batch_enabled,omitempty"`
	OutputSchema map[string]any    `yaml:"output_schema" json:"output_schema,omitempty"`
	Metadata     map[string]string `yaml:"metadata"      json:"metadata,omitempty"`

	// Prompt is the resolved contents of PromptFile, filled by the loader.
	Prompt string `yaml:"-" json:"-"`
}

// TraceMetadata carries observability context for an invocation.
type TraceMetadata struct {
	SessionID string
	AppName   string
	UserID    string
	Tags      []string
}

// NewTraceMetadata builds trace metadata, truncating the user ID to a
// tracing-safe length.
func NewTraceMetadata(sessionID, appName, userID string, tags ...string) TraceMetadata {
	if len(userID) > 200 {
		userID = userID[:200]
	}
	return TraceMetadata{SessionID: sessionID, AppName: appName, UserID: userID, Tags: tags}
}

// InvokeRequest is a single-prompt invocation of a named agent.
type InvokeRequest struct {
	AgentName string
	SessionID string
	Content   string
	Trace     TraceMetadata
}

// InvokeResult is the final state of an agent invocation.
type InvokeResult struct {
	AgentName  string
	SessionID  string
	Content    string
	Structured map[string]any // non-nil only for agents with an output schema
	ToolCalls  []ToolCall     // tool calls the engine made, in order
}

// AgentInvoker is the boundary to the external agent execution engine.
// Reasoning, handoff routing and LLM orchestration all live behind it.
type AgentInvoker interface {
	Invoke(ctx context.Context, req InvokeRequest) (*InvokeResult, error)
	InvokeBatch(ctx context.Context, agentName string, records []string, trace TraceMetadata) (*BatchResult, error)
}
