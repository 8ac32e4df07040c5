// Package usecase wires agent declarations, the invoker boundary and the
// history store into the operations the channels expose: chat, batch runs
// and session bookkeeping.
package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"jarvis-agents/internal/domain"
)

// SessionManager creates chat sessions, serves their transcripts and sweeps
// idle ones on a cron schedule.
type SessionManager struct {
	store  domain.HistoryStore
	ttl    time.Duration
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSessionManager builds a manager that prunes sessions idle longer than
// ttl. schedule is a cron expression ("@hourly", "*/10 * * * *"); an empty
// schedule disables background sweeping.
func NewSessionManager(store domain.HistoryStore, ttl time.Duration, schedule string, logger *slog.Logger) (*SessionManager, error) {
	m := &SessionManager{store: store, ttl: ttl, logger: logger}

	if schedule != "" {
		m.cron = cron.New()
		if _, err := m.cron.AddFunc(schedule, func() {
			if _, err := m.Sweep(); err != nil {
				logger.Error("session sweep failed", "error", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
		}
	}
	return m, nil
}

// Start launches the background sweep, if one is scheduled.
func (m *SessionManager) Start() {
	if m.cron != nil {
		m.cron.Start()
	}
}

// Stop halts the background sweep. Safe to call when sweeping is disabled.
func (m *SessionManager) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}

// Ensure registers the session, minting a fresh ID when sessionID is empty.
// Returns the effective session ID.
func (m *SessionManager) Ensure(sessionID, appName, userID string) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if err := m.store.EnsureSession(sessionID, appName, userID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// History returns the transcript of an existing session.
func (m *SessionManager) History(sessionID string) ([]domain.Message, error) {
	return m.store.Messages(sessionID)
}

// Append records one message in the session transcript.
func (m *SessionManager) Append(msg domain.Message) error {
	return m.store.Append(msg)
}

// Sweep prunes sessions idle longer than the TTL and returns how many were
// removed. A TTL of zero disables pruning entirely.
func (m *SessionManager) Sweep() (int, error) {
	if m.ttl <= 0 {
		return 0, nil
	}
	n, err := m.store.PruneBefore(time.Now().Add(-m.ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		m.logger.Info("swept idle sessions", "removed", n, "ttl", m.ttl)
	}
	return n, nil
}
