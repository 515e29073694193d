package hacknplan

import (
	"context"
	"fmt"

	"github.com/example/hnp/internal/ports/secondary"
)

// Wire shapes of the catalog endpoints. Only the fields used are decoded.

type categoryResponse struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

type tagResponse struct {
	TagID int64  `json:"tagId"`
	Name  string `json:"name"`
}

type memberResponse struct {
	User struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
}

type importanceLevelResponse struct {
	ImportanceLevelID int64  `json:"importanceLevelId"`
	Name              string `json:"name"`
	IsDefault         bool   `json:"isDefault"`
}

type boardResponse struct {
	BoardID int64  `json:"boardId"`
	Name    string `json:"name"`
}

type createTagRequest struct {
	Name string `json:"name"`
}

// ListCategories retrieves the project's categories.
func (c *Client) ListCategories(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	var raw []categoryResponse
	if err := c.getJSON(ctx, "/categories", &raw); err != nil {
		return nil, fmt.Errorf("hacknplan: list categories: %w", err)
	}

	records := make([]*secondary.CategoryRecord, len(raw))
	for i, r := range raw {
		records[i] = &secondary.CategoryRecord{ID: r.CategoryID, Name: r.Name}
	}
	return records, nil
}

// ListTags retrieves the project's tags.
func (c *Client) ListTags(ctx context.Context) ([]*secondary.TagRecord, error) {
	var raw []tagResponse
	if err := c.getJSON(ctx, "/tags", &raw); err != nil {
		return nil, fmt.Errorf("hacknplan: list tags: %w", err)
	}

	records := make([]*secondary.TagRecord, len(raw))
	for i, r := range raw {
		records[i] = &secondary.TagRecord{ID: r.TagID, Name: r.Name}
	}
	return records, nil
}

// ListUsers retrieves the project's members.
func (c *Client) ListUsers(ctx context.Context) ([]*secondary.UserRecord, error) {
	var raw []memberResponse
	if err := c.getJSON(ctx, "/users", &raw); err != nil {
		return nil, fmt.Errorf("hacknplan: list users: %w", err)
	}

	records := make([]*secondary.UserRecord, len(raw))
	for i, r := range raw {
		records[i] = &secondary.UserRecord{ID: r.User.ID, Name: r.User.Name, Username: r.User.Username}
	}
	return records, nil
}

// ListImportanceLevels retrieves the project's importance levels.
func (c *Client) ListImportanceLevels(ctx context.Context) ([]*secondary.ImportanceLevelRecord, error) {
	var raw []importanceLevelResponse
	if err := c.getJSON(ctx, "/importancelevels", &raw); err != nil {
		return nil, fmt.Errorf("hacknplan: list importance levels: %w", err)
	}

	records := make([]*secondary.ImportanceLevelRecord, len(raw))
	for i, r := range raw {
		records[i] = &secondary.ImportanceLevelRecord{ID: r.ImportanceLevelID, Name: r.Name, IsDefault: r.IsDefault}
	}
	return records, nil
}

// ListBoards retrieves the project's boards.
func (c *Client) ListBoards(ctx context.Context) ([]*secondary.BoardRecord, error) {
	var raw []boardResponse
	if err := c.getJSON(ctx, "/boards", &raw); err != nil {
		return nil, fmt.Errorf("hacknplan: list boards: %w", err)
	}

	records := make([]*secondary.BoardRecord, len(raw))
	for i, r := range raw {
		records[i] = &secondary.BoardRecord{ID: r.BoardID, Name: r.Name}
	}
	return records, nil
}
