package db

import (
	"database/sql"
	"fmt"
)

// DefaultImportanceLevels mirrors a fresh Hack'n'Plan project.
var DefaultImportanceLevels = []struct {
	Name      string
	IsDefault bool
}{
	{"Low", false},
	{"Normal", true},
	{"High", false},
	{"Urgent", false},
}

// SeedFixtures populates an empty database with the default importance levels
// and a small demo project.
func SeedFixtures(database *sql.DB) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	for _, l := range DefaultImportanceLevels {
		if _, err := tx.Exec(
			"INSERT INTO importance_levels (name, is_default) VALUES (?, ?)",
			l.Name, l.IsDefault,
		); err != nil {
			return fmt.Errorf("seed importance levels: %w", err)
		}
	}

	categories := []string{"Programming", "Art", "Design", "Writing", "Marketing", "Ideas", "Bugs"}
	for _, name := range categories {
		if _, err := tx.Exec("INSERT INTO categories (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	tags := []string{"ui", "backend", "tech-debt"}
	for _, name := range tags {
		if _, err := tx.Exec("INSERT INTO tags (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}
	}

	users := []struct{ name, username string }{
		{"Ada Lovelace", "ada"},
		{"Grace Hopper", "grace"},
	}
	for _, u := range users {
		if _, err := tx.Exec("INSERT INTO users (name, username) VALUES (?, ?)", u.name, u.username); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	if _, err := tx.Exec("INSERT INTO boards (name) VALUES (?)", "Sprint 1"); err != nil {
		return fmt.Errorf("seed boards: %w", err)
	}

	return tx.Commit()
}
