package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is recorded in schema_version when the schema is created.
const SchemaVersion = 1

// SchemaSQL is the complete schema of the local database.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL() and never hardcode CREATE TABLE statements,
// so a column referenced by repository code but missing here fails the tests
// with "no such column".
//
// The cached_* tables keep each record's backend JSON in payload; the other
// columns exist for lookups only.
const SchemaSQL = `
-- Offline snapshot of the entity stores
CREATE TABLE IF NOT EXISTS cached_projects (
	id INTEGER PRIMARY KEY,
	owner_id INTEGER,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cached_sprints (
	id INTEGER PRIMARY KEY,
	project_id INTEGER NOT NULL,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cached_sprints_project ON cached_sprints(project_id);

CREATE TABLE IF NOT EXISTS cached_features (
	id INTEGER PRIMARY KEY,
	project_id INTEGER NOT NULL,
	sprint_id INTEGER,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cached_features_project ON cached_features(project_id);

CREATE TABLE IF NOT EXISTS cached_tasks (
	id INTEGER PRIMARY KEY,
	feature_id INTEGER NOT NULL,
	assigned_to INTEGER,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cached_tasks_feature ON cached_tasks(feature_id);

CREATE TABLE IF NOT EXISTS cached_users (
	id INTEGER PRIMARY KEY,
	payload TEXT NOT NULL
);

-- Single row describing the stored snapshot
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id INTEGER PRIMARY KEY CHECK(id = 1),
	base_url TEXT NOT NULL,
	session_user TEXT,
	saved_at DATETIME NOT NULL
);

-- Backend session cookies, kept between invocations
CREATE TABLE IF NOT EXISTS session_cookies (
	base_url TEXT NOT NULL,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (base_url, name)
);

-- Confirmed mutations made from this machine
CREATE TABLE IF NOT EXISTS activity (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('project', 'sprint', 'feature', 'task')),
	entity_id INTEGER NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	detail TEXT
);

CREATE INDEX IF NOT EXISTS idx_activity_entity ON activity(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp);
`

// InitSchema creates any missing tables and records the schema version.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}

	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	if err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", current, SchemaVersion)
	}
	if current < SchemaVersion {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
