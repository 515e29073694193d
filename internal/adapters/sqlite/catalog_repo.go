// Package sqlite contains SQLite implementations of the tracker ports, used
// as an offline stand-in for Hack'n'Plan.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/hnp/internal/ports/secondary"
)

// CatalogRepository implements secondary.CatalogSource and
// secondary.TagCreator with SQLite.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new SQLite catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories retrieves all categories in creation order.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	return queryAll(ctx, r.db, "categories",
		"SELECT id, name FROM categories ORDER BY id ASC",
		func(rows *sql.Rows) (*secondary.CategoryRecord, error) {
			record := &secondary.CategoryRecord{}
			return record, rows.Scan(&record.ID, &record.Name)
		})
}

// ListTags retrieves all tags in creation order.
func (r *CatalogRepository) ListTags(ctx context.Context) ([]*secondary.TagRecord, error) {
	return queryAll(ctx, r.db, "tags",
		"SELECT id, name FROM tags ORDER BY id ASC",
		func(rows *sql.Rows) (*secondary.TagRecord, error) {
			record := &secondary.TagRecord{}
			return record, rows.Scan(&record.ID, &record.Name)
		})
}

// ListUsers retrieves all users in creation order.
func (r *CatalogRepository) ListUsers(ctx context.Context) ([]*secondary.UserRecord, error) {
	return queryAll(ctx, r.db, "users",
		"SELECT id, name, username FROM users ORDER BY id ASC",
		func(rows *sql.Rows) (*secondary.UserRecord, error) {
			record := &secondary.UserRecord{}
			return record, rows.Scan(&record.ID, &record.Name, &record.Username)
		})
}

// ListImportanceLevels retrieves all importance levels in creation order.
func (r *CatalogRepository) ListImportanceLevels(ctx context.Context) ([]*secondary.ImportanceLevelRecord, error) {
	return queryAll(ctx, r.db, "importance levels",
		"SELECT id, name, is_default FROM importance_levels ORDER BY id ASC",
		func(rows *sql.Rows) (*secondary.ImportanceLevelRecord, error) {
			record := &secondary.ImportanceLevelRecord{}
			return record, rows.Scan(&record.ID, &record.Name, &record.IsDefault)
		})
}

// ListBoards retrieves all boards in creation order.
func (r *CatalogRepository) ListBoards(ctx context.Context) ([]*secondary.BoardRecord, error) {
	return queryAll(ctx, r.db, "boards",
		"SELECT id, name FROM boards ORDER BY id ASC",
		func(rows *sql.Rows) (*secondary.BoardRecord, error) {
			record := &secondary.BoardRecord{}
			return record, rows.Scan(&record.ID, &record.Name)
		})
}

// CreateTag persists a new tag.
func (r *CatalogRepository) CreateTag(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", name)
	if err != nil {
		return fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return nil
}

// CreateCategory persists a new category and returns its ID.
func (r *CatalogRepository) CreateCategory(ctx context.Context, name string) (int64, error) {
	return insertReturningID(ctx, r.db, "category", "INSERT INTO categories (name) VALUES (?)", name)
}

// CreateUser persists a new project member and returns its ID.
func (r *CatalogRepository) CreateUser(ctx context.Context, name, username string) (int64, error) {
	return insertReturningID(ctx, r.db, "user", "INSERT INTO users (name, username) VALUES (?, ?)", name, username)
}

// CreateImportanceLevel persists a new importance level and returns its ID.
func (r *CatalogRepository) CreateImportanceLevel(ctx context.Context, name string, isDefault bool) (int64, error) {
	return insertReturningID(ctx, r.db, "importance level",
		"INSERT INTO importance_levels (name, is_default) VALUES (?, ?)", name, isDefault)
}

// queryAll runs a list query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, what, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}

	return records, nil
}

func insertReturningID(ctx context.Context, db *sql.DB, what, query string, args ...any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", what, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s id: %w", what, err)
	}
	return id, nil
}

var (
	_ secondary.CatalogSource = (*CatalogRepository)(nil)
	_ secondary.TagCreator    = (*CatalogRepository)(nil)
)
