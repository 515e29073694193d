package primary

import (
	"context"
	"fmt"
	"strings"
)

// CatalogService defines the primary port for browsing tracker catalogs.
type CatalogService interface {
	// ListCatalog retrieves every entry of one catalog.
	ListCatalog(ctx context.Context, kind CatalogKind) ([]*CatalogItem, error)
}

// CatalogKind names a tracker catalog.
type CatalogKind string

// Catalog kinds.
const (
	CatalogCategories CatalogKind = "categories"
	CatalogTags       CatalogKind = "tags"
	CatalogUsers      CatalogKind = "users"
	CatalogImportance CatalogKind = "importance"
	CatalogBoards     CatalogKind = "boards"
)

// CatalogKinds lists every kind in display order.
var CatalogKinds = []CatalogKind{CatalogCategories, CatalogTags, CatalogUsers, CatalogImportance, CatalogBoards}

// ParseCatalogKind parses a kind name, accepting singular forms.
func ParseCatalogKind(s string) (CatalogKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range CatalogKinds {
		if s == string(k) || s+"s" == string(k) {
			return k, nil
		}
	}
	if s == "category" {
		return CatalogCategories, nil
	}
	return "", fmt.Errorf("unknown catalog %q (want one of %v)", s, CatalogKinds)
}

// CatalogItem represents a catalog entry at the port boundary.
type CatalogItem struct {
	ID     int64
	Name   string
	Detail string // user handle, or "default" for the default importance level
}
