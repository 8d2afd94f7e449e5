package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityRepository with SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create persists a new activity entry.
func (r *ActivityRepository) Create(ctx context.Context, record *secondary.ActivityRecord) error {
	var actorID, detail sql.NullString
	if record.ActorID != "" {
		actorID = sql.NullString{String: record.ActorID, Valid: true}
	}
	if record.Detail != "" {
		detail = sql.NullString{String: record.Detail, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity (id, actor_id, entity_type, entity_id, action, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		actorID,
		record.EntityType,
		record.EntityID,
		record.Action,
		detail,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// List retrieves activity entries matching the given filters.
func (r *ActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := `SELECT id, timestamp, actor_id, entity_type, entity_id, action, detail FROM activity WHERE 1=1`
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID > 0 {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ActivityRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			detail    sql.NullString
			timestamp time.Time
		)

		record := &secondary.ActivityRecord{}
		err := rows.Scan(&record.ID,
			&timestamp,
			&actorID,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&detail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		record.Timestamp = timestamp.Format(time.RFC3339)
		record.ActorID = actorID.String
		record.Detail = detail.String

		records = append(records, record)
	}

	return records, nil
}

// PruneOlderThan deletes activity entries older than the given number of days.
func (r *ActivityRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM activity WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure ActivityRepository implements the interface
var _ secondary.ActivityRepository = (*ActivityRepository)(nil)
