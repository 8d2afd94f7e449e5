// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// SnapshotRepository implements secondary.SnapshotRepository with SQLite.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SQLite snapshot repository.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveSnapshot replaces the stored snapshot in one transaction.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snap *secondary.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"cached_projects", "cached_sprints", "cached_features", "cached_tasks", "cached_users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, p := range snap.Projects {
		if err := insertPayload(ctx, tx, `INSERT INTO cached_projects (id, owner_id, payload) VALUES (?, ?, ?)`, p, p.ID, p.OwnerID); err != nil {
			return fmt.Errorf("failed to save project %d: %w", p.ID, err)
		}
	}
	for _, s := range snap.Sprints {
		if err := insertPayload(ctx, tx, `INSERT INTO cached_sprints (id, project_id, payload) VALUES (?, ?, ?)`, s, s.ID, s.ProjectID); err != nil {
			return fmt.Errorf("failed to save sprint %d: %w", s.ID, err)
		}
	}
	for _, f := range snap.Features {
		if err := insertPayload(ctx, tx, `INSERT INTO cached_features (id, project_id, sprint_id, payload) VALUES (?, ?, ?, ?)`, f, f.ID, f.ProjectID, nullInt(f.SprintID)); err != nil {
			return fmt.Errorf("failed to save feature %d: %w", f.ID, err)
		}
	}
	for _, t := range snap.Tasks {
		if err := insertPayload(ctx, tx, `INSERT INTO cached_tasks (id, feature_id, assigned_to, payload) VALUES (?, ?, ?, ?)`, t, t.ID, t.FeatureID, nullInt(t.AssignedTo)); err != nil {
			return fmt.Errorf("failed to save task %d: %w", t.ID, err)
		}
	}
	for _, u := range snap.Users {
		if err := insertPayload(ctx, tx, `INSERT INTO cached_users (id, payload) VALUES (?, ?)`, u, u.ID); err != nil {
			return fmt.Errorf("failed to save user %d: %w", u.ID, err)
		}
	}

	var sessionUser sql.NullString
	if snap.SessionUser != nil {
		data, err := json.Marshal(snap.SessionUser)
		if err != nil {
			return fmt.Errorf("failed to encode session user: %w", err)
		}
		sessionUser = sql.NullString{String: string(data), Valid: true}
	}
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, base_url, session_user, saved_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET base_url = excluded.base_url, session_user = excluded.session_user, saved_at = excluded.saved_at`,
		snap.BaseURL, sessionUser, savedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the stored snapshot.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*secondary.Snapshot, error) {
	var (
		snap        secondary.Snapshot
		sessionUser sql.NullString
		savedAt     time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT base_url, session_user, saved_at FROM snapshot_meta WHERE id = 1`,
	).Scan(&snap.BaseURL, &sessionUser, &savedAt)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot metadata: %w", err)
	}
	snap.SavedAt = savedAt
	if sessionUser.Valid {
		var u models.User
		if err := json.Unmarshal([]byte(sessionUser.String), &u); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
		snap.SessionUser = &u
	}

	if snap.Projects, err = loadPayloads[models.Project](ctx, r.db, "cached_projects"); err != nil {
		return nil, err
	}
	if snap.Sprints, err = loadPayloads[models.Sprint](ctx, r.db, "cached_sprints"); err != nil {
		return nil, err
	}
	if snap.Features, err = loadPayloads[models.Feature](ctx, r.db, "cached_features"); err != nil {
		return nil, err
	}
	if snap.Tasks, err = loadPayloads[models.Task](ctx, r.db, "cached_tasks"); err != nil {
		return nil, err
	}
	if snap.Users, err = loadPayloads[models.User](ctx, r.db, "cached_users"); err != nil {
		return nil, err
	}

	return &snap, nil
}

// insertPayload encodes record as the last query argument.
func insertPayload(ctx context.Context, tx *sql.Tx, query string, record any, args ...any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, append(args, string(data))...)
	return err
}

func loadPayloads[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, "SELECT payload FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		var record T
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", table, err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return out, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// Ensure SnapshotRepository implements the interface
var _ secondary.SnapshotRepository = (*SnapshotRepository)(nil)
