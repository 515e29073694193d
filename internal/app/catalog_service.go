package app

import (
	"context"
	"fmt"

	"github.com/example/hnp/internal/ports/primary"
	"github.com/example/hnp/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	source secondary.CatalogSource
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(source secondary.CatalogSource) *CatalogServiceImpl {
	return &CatalogServiceImpl{source: source}
}

// ListCatalog retrieves every entry of one catalog, in source order.
func (s *CatalogServiceImpl) ListCatalog(ctx context.Context, kind primary.CatalogKind) ([]*primary.CatalogItem, error) {
	var items []*primary.CatalogItem

	switch kind {
	case primary.CatalogCategories:
		records, err := s.source.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		for _, r := range records {
			items = append(items, &primary.CatalogItem{ID: r.ID, Name: r.Name})
		}
	case primary.CatalogTags:
		records, err := s.source.ListTags(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags: %w", err)
		}
		for _, r := range records {
			items = append(items, &primary.CatalogItem{ID: r.ID, Name: r.Name})
		}
	case primary.CatalogUsers:
		records, err := s.source.ListUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		for _, r := range records {
			items = append(items, &primary.CatalogItem{ID: r.ID, Name: r.Name, Detail: "@" + r.Username})
		}
	case primary.CatalogImportance:
		records, err := s.source.ListImportanceLevels(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list importance levels: %w", err)
		}
		for _, r := range records {
			item := &primary.CatalogItem{ID: r.ID, Name: r.Name}
			if r.IsDefault {
				item.Detail = "default"
			}
			items = append(items, item)
		}
	case primary.CatalogBoards:
		records, err := s.source.ListBoards(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list boards: %w", err)
		}
		for _, r := range records {
			items = append(items, &primary.CatalogItem{ID: r.ID, Name: r.Name})
		}
	default:
		return nil, fmt.Errorf("unknown catalog %q", kind)
	}

	return items, nil
}

// Ensure CatalogServiceImpl implements the interface.
var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
