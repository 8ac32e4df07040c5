// Package channel exposes a domain application over HTTP: a JSON chat API,
// batch invocation, agent discovery and a WebSocket stream for multi-turn
// conversations.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"jarvis-agents/internal/domain"
	"jarvis-agents/internal/infra/middleware"
	"jarvis-agents/internal/usecase"
)

// Options tunes the HTTP server.
type Options struct {
	Addr            string
	RateLimitPerMin int
	RateLimitBurst  int
}

// Server is the HTTP channel for one domain application.
type Server struct {
	chat     *usecase.Chat
	batch    *usecase.Batch
	sessions *usecase.SessionManager
	logger   *slog.Logger
	opts     Options

	httpSrv   *http.Server
	boundAddr string
	cancel    context.CancelFunc
}

// NewServer builds the HTTP channel. Start must be called before it serves.
func NewServer(chat *usecase.Chat, batch *usecase.Batch, sessions *usecase.SessionManager, opts Options, logger *slog.Logger) *Server {
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 100
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 20
	}
	return &Server{chat: chat, batch: batch, sessions: sessions, logger: logger, opts: opts}
}

// Start begins serving. Non-blocking; the server runs until Stop.
func (s *Server) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/chat", s.handleChat)
	mux.HandleFunc("/api/v1/batch", s.handleBatch)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/schema", s.handleSchema)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	handler := middleware.SecurityHeaders(
		middleware.RateLimit(ctx, s.opts.RateLimitPerMin, s.opts.RateLimitBurst)(mux),
	)

	s.httpSrv = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	s.boundAddr = ln.Addr().String()

	go func() {
		s.logger.Info("http channel started", "addr", s.boundAddr)
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() string { return s.boundAddr }

type chatRequest struct {
	Agent     string `json:"agent"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Content   string `json:"content"`
}

type chatResponse struct {
	SessionID  string            `json:"session_id"`
	Agent      string            `json:"agent"`
	Content    string            `json:"content"`
	Structured map[string]any    `json:"structured,omitempty"`
	ToolCalls  []domain.ToolCall `json:"tool_calls,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type batchRequest struct {
	Agent   string   `json:"agent"`
	Records []string `json:"records"`
	UserID  string   `json:"user_id,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	// 1MB cap keeps oversized payloads from tying up the decoder.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	result, err := s.chat.Send(r.Context(), usecase.SendRequest{
		AgentName: req.Agent,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Content:   req.Content,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:  result.SessionID,
		Agent:      result.AgentName,
		Content:    result.Content,
		Structured: result.Structured,
		ToolCalls:  result.ToolCalls,
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	result, err := s.batch.Run(r.Context(), req.Agent, req.Records, req.UserID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": s.chat.Agents()})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	agent := r.URL.Query().Get("agent")
	if agent == "" {
		writeError(w, http.StatusBadRequest, errors.New("agent query parameter is required"))
		return
	}

	schema, err := s.chat.SchemaFor(agent)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(schema)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, errors.New("session_id query parameter is required"))
		return
	}

	msgs, err := s.sessions.History(sessionID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   msgs,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsNotFound(err), errors.Is(err, domain.ErrSchemaNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotBatchEnabled),
		errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvokerOverload):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
