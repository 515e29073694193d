package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs, reflecting the state
// after all migrations. Tests load it through GetSchemaSQL.
//
// Keep this in sync with migrations: a new column goes into both a new
// migration and the table definition here.
const SchemaSQL = `
-- Work item categories
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tags
CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Project members
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	username TEXT NOT NULL UNIQUE COLLATE NOCASE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Importance levels (at most one default)
CREATE TABLE IF NOT EXISTS importance_levels (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	is_default INTEGER NOT NULL DEFAULT 0 CHECK(is_default IN (0, 1)),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_importance_levels_default ON importance_levels(is_default) WHERE is_default = 1;

-- Boards
CREATE TABLE IF NOT EXISTS boards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Submitted work items (id lists and sub-tasks are JSON arrays)
CREATE TABLE IF NOT EXISTS work_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category_id INTEGER NOT NULL,
	importance_level_id INTEGER,
	board_id INTEGER,
	estimated_cost REAL NOT NULL DEFAULT 0,
	assigned_user_ids TEXT NOT NULL DEFAULT '[]',
	tag_ids TEXT NOT NULL DEFAULT '[]',
	sub_tasks TEXT NOT NULL DEFAULT '[]',
	dependency_ids TEXT NOT NULL DEFAULT '[]',
	request_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (category_id) REFERENCES categories(id),
	FOREIGN KEY (importance_level_id) REFERENCES importance_levels(id),
	FOREIGN KEY (board_id) REFERENCES boards(id)
);

CREATE INDEX IF NOT EXISTS idx_work_items_category ON work_items(category_id);
`

// InitSchema creates the database schema
func InitSchema(database *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		_, err := RunMigrations(database)
		return err
	}

	// Fresh install: create the modern schema directly and mark every
	// migration as applied.
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := createVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
