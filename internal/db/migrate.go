package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// "duplicate column name" errors from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
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
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		grid_unit       TEXT NOT NULL DEFAULT 'day'
		                CHECK(grid_unit IN ('day','hour')),
		pixels_per_unit REAL NOT NULL DEFAULT 40,
		group_by        TEXT NOT NULL DEFAULT 'group',
		sort_mode       TEXT NOT NULL DEFAULT 'start',
		swimlanes       INTEGER NOT NULL DEFAULT 0,
		last_updated    TEXT NOT NULL
	)`,

	// Item and group ids are scoped per project, so every child table keys
	// and references them as (project_id, id). The group parent reference is
	// deferred: SaveSnapshot rewrites all of a project's rows inside one
	// transaction and the tree is only required to be consistent at commit,
	// not per statement.
	`CREATE TABLE IF NOT EXISTS item_groups (
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		name        TEXT NOT NULL,
		parent_id   TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, id),
		FOREIGN KEY (project_id, parent_id) REFERENCES item_groups(project_id, id)
			DEFERRABLE INITIALLY DEFERRED
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		kind         TEXT NOT NULL DEFAULT 'task'
		             CHECK(kind IN ('task','milestone','summary')),
		group_id     TEXT,
		start_at     TEXT NOT NULL,
		end_at       TEXT NOT NULL,
		duration_min INTEGER NOT NULL DEFAULT 0,
		percent_done REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_group ON items(project_id, group_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		project_id TEXT NOT NULL,
		from_id    TEXT NOT NULL,
		to_id      TEXT NOT NULL,
		PRIMARY KEY (project_id, from_id, to_id),
		CHECK (from_id != to_id),
		FOREIGN KEY (project_id, from_id) REFERENCES items(project_id, id) ON DELETE CASCADE,
		FOREIGN KEY (project_id, to_id) REFERENCES items(project_id, id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		id         TEXT NOT NULL,
		name       TEXT NOT NULL,
		date       TEXT NOT NULL,
		PRIMARY KEY (project_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS baselines (
		project_id TEXT NOT NULL,
		item_id    TEXT NOT NULL,
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		PRIMARY KEY (project_id, item_id),
		FOREIGN KEY (project_id, item_id) REFERENCES items(project_id, id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS project_meta (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		PRIMARY KEY (project_id, key)
	)`,

	`CREATE TABLE IF NOT EXISTS project_aux (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		key        TEXT NOT NULL,
		payload    TEXT NOT NULL,
		PRIMARY KEY (project_id, key)
	)`,
}
