package ticket

import (
	"slices"

	"github.com/example/hnp/internal/core/annotation"
	"github.com/example/hnp/internal/core/catalog"
	"github.com/example/hnp/internal/core/document"
)

// CollectUnmatchedTags returns the sorted, de-duplicated names of every
// hash-tag in the block titles that resolves to neither a category nor a
// tag. Descriptions are not scanned.
func CollectUnmatchedTags(g *annotation.Grammar, r catalog.Resolver[catalog.Match], blocks []document.Block) ([]string, error) {
	var names []string
	for _, block := range blocks {
		matches, err := resolveAll(g, r, block.Title)
		if err != nil {
			return nil, blockError(block, err)
		}
		for _, m := range matches {
			if u, ok := m.(catalog.UnresolvedTag); ok {
				names = append(names, u.Name)
			}
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}
