// Package sqlite_test contains integration tests for the SQLite tracker.
//
// Every test database is built from db.GetSchemaSQL() so tests run against
// the authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/hnp/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCategory inserts a category and returns its ID.
func seedCategory(t *testing.T, testDB *sql.DB, name string) int64 {
	t.Helper()
	return seedRow(t, testDB, "INSERT INTO categories (name) VALUES (?)", name)
}

// seedImportance inserts an importance level and returns its ID.
func seedImportance(t *testing.T, testDB *sql.DB, name string, isDefault bool) int64 {
	t.Helper()
	return seedRow(t, testDB, "INSERT INTO importance_levels (name, is_default) VALUES (?, ?)", name, isDefault)
}

func seedRow(t *testing.T, testDB *sql.DB, query string, args ...any) int64 {
	t.Helper()
	result, err := testDB.Exec(query, args...)
	if err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded id: %v", err)
	}
	return id
}
