// Package history persists chat transcripts in SQLite so a session survives
// server restarts. Sweeping of expired sessions is driven by the session
// manager, not by the store itself.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"jarvis-agents/internal/domain"
)

// SQLiteStore implements domain.HistoryStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and runs the
// schema migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// WAL mode for better concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id           TEXT PRIMARY KEY,
			app_name     TEXT NOT NULL,
			user_id      TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL,
			last_active  TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS messages (
			id         TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			agent_name TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_sessions_last_active ON sessions(last_active);
	`)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureSession creates the session row if it does not exist and refreshes
// its last-active timestamp if it does.
func (s *SQLiteStore) EnsureSession(sessionID, appName, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, app_name, user_id, created_at, last_active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET last_active = excluded.last_active`,
		sessionID, appName, userID, now, now,
	)
	if err != nil {
		return fmt.Errorf("%w: ensure session: %v", domain.ErrHistoryStore, err)
	}
	return nil
}

// Append stores one transcript message and bumps the session's last-active
// timestamp. The message ID is assigned here when empty.
func (s *SQLiteStore) Append(msg domain.Message) error {
	if msg.ID == "" {
		msg.ID = ulid.Make().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrHistoryStore, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE sessions SET last_active = ? WHERE id = ?",
		msg.CreatedAt.Format(time.RFC3339Nano), msg.SessionID)
	if err != nil {
		return fmt.Errorf("%w: touch session: %v", domain.ErrHistoryStore, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewDomainError("SQLiteStore.Append", domain.ErrSessionNotFound, msg.SessionID)
	}

	_, err = tx.Exec(`
		INSERT INTO messages (id, session_id, role, content, agent_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, string(msg.Role), msg.Content, msg.AgentName,
		msg.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: insert message: %v", domain.ErrHistoryStore, err)
	}
	return tx.Commit()
}

// Messages returns the session transcript in chronological order.
func (s *SQLiteStore) Messages(sessionID string) ([]domain.Message, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM sessions WHERE id = ?", sessionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryStore, err)
	}
	if exists == 0 {
		return nil, domain.NewDomainError("SQLiteStore.Messages", domain.ErrSessionNotFound, sessionID)
	}

	rows, err := s.db.Query(`
		SELECT id, session_id, role, content, agent_name, created_at
		FROM messages WHERE session_id = ? ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHistoryStore, err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		var role, createdAt string
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.AgentName, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan message: %v", domain.ErrHistoryStore, err)
		}
		m.Role = domain.Role(role)
		m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: parse timestamp: %v", domain.ErrHistoryStore, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// PruneBefore deletes sessions whose last activity predates cutoff, along
// with their messages. Returns the number of sessions removed.
func (s *SQLiteStore) PruneBefore(cutoff time.Time) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", domain.ErrHistoryStore, err)
	}
	defer tx.Rollback()

	mark := cutoff.UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(`
		DELETE FROM messages WHERE session_id IN
		(SELECT id FROM sessions WHERE last_active < ?)`, mark); err != nil {
		return 0, fmt.Errorf("%w: prune messages: %v", domain.ErrHistoryStore, err)
	}

	res, err := tx.Exec("DELETE FROM sessions WHERE last_active < ?", mark)
	if err != nil {
		return 0, fmt.Errorf("%w: prune sessions: %v", domain.ErrHistoryStore, err)
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", domain.ErrHistoryStore, err)
	}
	return int(n), nil
}
