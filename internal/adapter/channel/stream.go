package channel

import (
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"jarvis-agents/internal/usecase"
)

// handleStream upgrades to WebSocket for multi-turn conversations. Each
// inbound frame is a chatRequest; the reply frame is a chatResponse. The
// session minted on the first turn is reused for the rest of the connection
// so a client can hold a conversation without tracking session IDs itself.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{
			"localhost",
			"localhost:*",
			"127.0.0.1",
			"127.0.0.1:*",
			"[::1]",
			"[::1]:*",
		},
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer ws.Close(websocket.StatusInternalError, "closing")

	s.logger.Info("stream client connected", "remote", r.RemoteAddr)

	ctx := r.Context()
	sessionID := ""

	for {
		var req chatRequest
		if err := wsjson.Read(ctx, ws, &req); err != nil {
			// Connection closed or the peer went away.
			s.logger.Info("stream client disconnected", "remote", r.RemoteAddr)
			return
		}

		if req.SessionID == "" {
			req.SessionID = sessionID
		}

		result, err := s.chat.Send(ctx, usecase.SendRequest{
			AgentName: req.Agent,
			SessionID: req.SessionID,
			UserID:    req.UserID,
			Content:   req.Content,
		})
		if err != nil {
			if werr := wsjson.Write(ctx, ws, chatResponse{
				SessionID: req.SessionID,
				Agent:     req.Agent,
				Error:     err.Error(),
			}); werr != nil {
				return
			}
			continue
		}

		sessionID = result.SessionID

		if err := wsjson.Write(ctx, ws, chatResponse{
			SessionID:  result.SessionID,
			Agent:      result.AgentName,
			Content:    result.Content,
			Structured: result.Structured,
			ToolCalls:  result.ToolCalls,
		}); err != nil {
			return
		}
	}
}
