package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL CHECK (type IN ('feature', 'epic')),
		title TEXT NOT NULL,
		project_id TEXT NOT NULL REFERENCES projects(id),
		start_date TEXT,
		end_date TEXT,
		status TEXT NOT NULL DEFAULT '',
		assignee TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		parent_epic TEXT REFERENCES features(id),
		original_rank INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_features_parent_epic ON features(parent_epic)`,
	`CREATE INDEX IF NOT EXISTS idx_features_project ON features(project_id)`,

	`CREATE TABLE IF NOT EXISTS team_loads (
		feature_id TEXT NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		team_id TEXT NOT NULL REFERENCES teams(id),
		load REAL NOT NULL,
		PRIMARY KEY (feature_id, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS scenario_overrides (
		scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
		feature_id TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		PRIMARY KEY (scenario_id, feature_id)
	)`,
}
