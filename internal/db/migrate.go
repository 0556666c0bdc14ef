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
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		location   TEXT NOT NULL DEFAULT '',
		budget     TEXT NOT NULL DEFAULT '0',
		currency   TEXT NOT NULL DEFAULT 'USD',
		start_date TEXT NOT NULL,
		end_date   TEXT,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','on_hold','completed')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id         TEXT REFERENCES wbs_items(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		level             INTEGER NOT NULL DEFAULT 1,
		code              TEXT NOT NULL,
		type              TEXT NOT NULL
		                  CHECK(type IN ('Summary','WorkPackage','Activity')),
		budgeted_cost     TEXT NOT NULL DEFAULT '0',
		actual_cost       TEXT NOT NULL DEFAULT '0',
		percent_complete  TEXT NOT NULL DEFAULT '0',
		is_top_level      INTEGER NOT NULL DEFAULT 0,
		start_date        TEXT,
		end_date          TEXT,
		duration          INTEGER,
		actual_start_date TEXT,
		actual_end_date   TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		id             TEXT PRIMARY KEY,
		predecessor_id TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		type           TEXT NOT NULL CHECK(type IN ('FS','SS','FF','SF')),
		lag            INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		UNIQUE(predecessor_id, successor_id, type)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_items_project ON wbs_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_items_parent ON wbs_items(parent_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_wbs_items_code ON wbs_items(project_id, code)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_successor ON dependencies(successor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_predecessor ON dependencies(predecessor_id)`,
}
