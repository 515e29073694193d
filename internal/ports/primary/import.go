package primary

import (
	"context"

	"github.com/example/hnp/internal/core/ticket"
)

// ImportService defines the primary port for turning a ticket document into
// submitted work items.
type ImportService interface {
	// Import runs the whole pipeline: catalog fetch, unmatched-tag
	// reconciliation, catalog refresh, build, and submission.
	Import(ctx context.Context, req ImportRequest) (*ImportResponse, error)

	// Check splits and scans a document without contacting the tracker.
	Check(ctx context.Context, req CheckRequest) (*CheckResponse, error)
}

// ImportRequest contains parameters for an import run.
type ImportRequest struct {
	Document        string
	DefaultCategory string
	Preview         bool // skip confirmation; adapters render instead of mutate
}

// ImportResponse contains the result of an import run.
type ImportResponse struct {
	Blocks        int
	UnmatchedTags []string
	CreatedTags   []string
	Drafts        []*ticket.Draft
	Submitted     int
}

// CheckRequest contains parameters for an offline document check.
type CheckRequest struct {
	Document string
}

// CheckResponse lists what each block carries.
type CheckResponse struct {
	Blocks []*BlockSummary
}

// BlockSummary describes the annotations found in one block.
type BlockSummary struct {
	Number   int
	Title    string // cleaned title
	HashTags []string
	Mentions []string
	Urgency  string
	Estimate float64
	SubTasks int
}
