package usecase

import (
	"context"
	"log/slog"

	"jarvis-agents/internal/agentcfg"
	"jarvis-agents/internal/domain"
)

// Chat drives single-prompt conversations: it resolves the agent, keeps the
// transcript and forwards the prompt over the invoker boundary.
type Chat struct {
	appName  string
	meta     *agentcfg.Meta
	invoker  domain.AgentInvoker
	sessions *SessionManager
	logger   *slog.Logger
}

// NewChat builds the chat use case for one domain application.
func NewChat(appName string, meta *agentcfg.Meta, inv domain.AgentInvoker, sessions *SessionManager, logger *slog.Logger) *Chat {
	return &Chat{appName: appName, meta: meta, invoker: inv, sessions: sessions, logger: logger}
}

// SendRequest is one chat turn. An empty SessionID starts a new session.
type SendRequest struct {
	AgentName string
	SessionID string
	UserID    string
	Content   string
}

// Send runs one chat turn and returns the agent's reply. The user prompt and
// the reply are both appended to the session transcript.
func (c *Chat) Send(ctx context.Context, req SendRequest) (*domain.InvokeResult, error) {
	def, err := c.meta.Lookup(req.AgentName)
	if err != nil {
		return nil, err
	}
	if req.Content == "" {
		return nil, domain.NewDomainError("Chat.Send", domain.ErrInvalidInput, "content must not be empty")
	}

	sessionID, err := c.sessions.Ensure(req.SessionID, c.appName, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := c.sessions.Append(domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   req.Content,
	}); err != nil {
		return nil, err
	}

	trace := domain.NewTraceMetadata(sessionID, c.appName+"_"+def.Name, req.UserID,
		c.appName, def.Name, "chat")

	result, err := c.invoker.Invoke(ctx, domain.InvokeRequest{
		AgentName: def.Name,
		SessionID: sessionID,
		Content:   req.Content,
		Trace:     trace,
	})
	if err != nil {
		c.logger.Warn("invocation failed", "agent", def.Name, "session", sessionID, "error", err)
		return nil, err
	}

	if err := c.sessions.Append(domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   result.Content,
		AgentName: def.Name,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// Agents lists the agents this domain exposes.
func (c *Chat) Agents() []domain.AgentDef {
	return c.meta.List()
}

// SchemaFor returns the declared output schema of an agent.
func (c *Chat) SchemaFor(agentName string) ([]byte, error) {
	return c.meta.SchemaFor(agentName)
}
