// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/hnp/internal/core/ticket"
)

// CatalogSource defines the secondary port for reading tracker catalogs.
// Every method is idempotent and may be called more than once per run.
type CatalogSource interface {
	// ListCategories retrieves the project's work item categories.
	ListCategories(ctx context.Context) ([]*CategoryRecord, error)

	// ListTags retrieves the project's tags.
	ListTags(ctx context.Context) ([]*TagRecord, error)

	// ListUsers retrieves the project's members.
	ListUsers(ctx context.Context) ([]*UserRecord, error)

	// ListImportanceLevels retrieves the project's importance levels.
	ListImportanceLevels(ctx context.Context) ([]*ImportanceLevelRecord, error)

	// ListBoards retrieves the project's boards.
	ListBoards(ctx context.Context) ([]*BoardRecord, error)
}

// TagCreator defines the secondary port for adding tags to the tracker.
type TagCreator interface {
	// CreateTag creates a tag with the given name.
	CreateTag(ctx context.Context, name string) error
}

// TicketSink defines the secondary port for submitting work items.
type TicketSink interface {
	// SubmitTicket submits one finished draft.
	SubmitTicket(ctx context.Context, draft *ticket.Draft) error
}

// Confirmer defines the secondary port for operator yes/no decisions.
type Confirmer interface {
	// Confirm shows message and reports whether the operator agreed.
	Confirm(ctx context.Context, message string) (bool, error)
}

// CategoryRecord represents a category as returned by a catalog source.
type CategoryRecord struct {
	ID   int64
	Name string
}

// TagRecord represents a tag as returned by a catalog source.
type TagRecord struct {
	ID   int64
	Name string
}

// UserRecord represents a project member.
type UserRecord struct {
	ID       int64
	Name     string // display name
	Username string // handle used in mentions
}

// ImportanceLevelRecord represents an importance level.
type ImportanceLevelRecord struct {
	ID        int64
	Name      string
	IsDefault bool
}

// BoardRecord represents a project board.
type BoardRecord struct {
	ID   int64
	Name string
}
