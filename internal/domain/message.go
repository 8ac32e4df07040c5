package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in a chat session transcript.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	AgentName string    `json:"agent_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore persists chat transcripts across sessions.
type HistoryStore interface {
	EnsureSession(sessionID, appName, userID string) error
	Append(msg Message) error
	Messages(sessionID string) ([]Message, error)
	PruneBefore(cutoff time.Time) (int, error)
	Close() error
}
