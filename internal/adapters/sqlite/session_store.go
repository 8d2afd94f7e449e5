package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/sprintdesk/internal/ports/secondary"
)

// SessionStore implements secondary.SessionStore with SQLite.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new SQLite session cookie store.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// SaveCookies replaces the cookies stored for baseURL.
func (s *SessionStore) SaveCookies(ctx context.Context, baseURL string, cookies map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_cookies WHERE base_url = ?`, baseURL); err != nil {
		return fmt.Errorf("failed to clear session cookies: %w", err)
	}
	for name, value := range cookies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_cookies (base_url, name, value) VALUES (?, ?, ?)`,
			baseURL, name, value,
		); err != nil {
			return fmt.Errorf("failed to save cookie %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadCookies returns the cookies stored for baseURL.
func (s *SessionStore) LoadCookies(ctx context.Context, baseURL string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM session_cookies WHERE base_url = ?`, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load session cookies: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session cookie: %w", err)
		}
		out[name] = value
	}
	return out, rows.Err()
}

// ClearCookies forgets the cookies stored for baseURL.
func (s *SessionStore) ClearCookies(ctx context.Context, baseURL string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_cookies WHERE base_url = ?`, baseURL); err != nil {
		return fmt.Errorf("failed to clear session cookies: %w", err)
	}
	return nil
}

var _ secondary.SessionStore = (*SessionStore)(nil)
