package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/hnp/internal/core/ticket"
	"github.com/example/hnp/internal/ctxutil"
	"github.com/example/hnp/internal/ports/secondary"
)

// WorkItemRecord is a stored work item.
type WorkItemRecord struct {
	ID                int64
	Title             string
	Description       string
	CategoryID        int64
	ImportanceLevelID int64
	BoardID           int64
	EstimatedCost     float64
	AssignedUserIDs   []int64
	TagIDs            []int64
	SubTasks          []string
	DependencyIDs     []int64
	RequestID         string
	CreatedAt         string
}

// WorkItemRepository implements secondary.TicketSink with SQLite.
type WorkItemRepository struct {
	db        *sql.DB
	requestID string
}

// NewWorkItemRepository creates a new SQLite work item repository. Stored
// items are stamped with the context's run ID, or requestID without one.
func NewWorkItemRepository(db *sql.DB, requestID string) *WorkItemRepository {
	return &WorkItemRepository{db: db, requestID: requestID}
}

// SubmitTicket persists a draft as a work item.
func (r *WorkItemRepository) SubmitTicket(ctx context.Context, draft *ticket.Draft) error {
	assigned, err := encodeList(draft.AssignedUserIDs)
	if err != nil {
		return err
	}
	tags, err := encodeList(draft.TagIDs)
	if err != nil {
		return err
	}
	subTasks, err := encodeList(draft.SubTasks)
	if err != nil {
		return err
	}
	dependencies, err := encodeList(draft.DependencyIDs)
	if err != nil {
		return err
	}

	requestID := r.requestID
	if id := ctxutil.RunIDFromContext(ctx); id != "" {
		requestID = id
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO work_items (title, description, category_id, importance_level_id, board_id,
			estimated_cost, assigned_user_ids, tag_ids, sub_tasks, dependency_ids, request_id)
		VALUES (?, ?, ?, NULLIF(?, 0), NULLIF(?, 0), ?, ?, ?, ?, ?, NULLIF(?, ''))`,
		draft.Title, draft.Description, draft.CategoryID, draft.ImportanceLevelID, draft.BoardID,
		draft.EstimatedCost, assigned, tags, subTasks, dependencies, requestID,
	)
	if err != nil {
		return fmt.Errorf("failed to create work item %q: %w", draft.Title, err)
	}

	return nil
}

// List retrieves all work items in submission order.
func (r *WorkItemRepository) List(ctx context.Context) ([]*WorkItemRecord, error) {
	return queryAll(ctx, r.db, "work items",
		`SELECT id, title, description, category_id, COALESCE(importance_level_id, 0), COALESCE(board_id, 0),
			estimated_cost, assigned_user_ids, tag_ids, sub_tasks, dependency_ids, COALESCE(request_id, ''), created_at
		FROM work_items ORDER BY id ASC`,
		scanWorkItem)
}

func scanWorkItem(rows *sql.Rows) (*WorkItemRecord, error) {
	var (
		record                                 WorkItemRecord
		assigned, tags, subTasks, dependencies string
		createdAt                              time.Time
	)
	err := rows.Scan(&record.ID, &record.Title, &record.Description, &record.CategoryID,
		&record.ImportanceLevelID, &record.BoardID, &record.EstimatedCost,
		&assigned, &tags, &subTasks, &dependencies, &record.RequestID, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := decodeList(assigned, &record.AssignedUserIDs); err != nil {
		return nil, err
	}
	if err := decodeList(tags, &record.TagIDs); err != nil {
		return nil, err
	}
	if err := decodeList(subTasks, &record.SubTasks); err != nil {
		return nil, err
	}
	if err := decodeList(dependencies, &record.DependencyIDs); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return &record, nil
}

func encodeList[T any](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeList[T any](data string, out *[]T) error {
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to decode list: %w", err)
	}
	return nil
}

var _ secondary.TicketSink = (*WorkItemRepository)(nil)
