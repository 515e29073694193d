package ticket

import (
	"errors"
	"fmt"
	"slices"

	"github.com/example/hnp/internal/core/annotation"
	"github.com/example/hnp/internal/core/catalog"
	"github.com/example/hnp/internal/core/document"
)

// ErrMissingCategory is returned when a ticket title resolves no category.
var ErrMissingCategory = errors.New("no category resolved for ticket")

// ImportanceResolver resolves urgency markers and supplies the default level.
type ImportanceResolver interface {
	catalog.Resolver[catalog.ImportanceRef]
	Default() (catalog.ImportanceRef, error)
}

// Options tune the builder.
type Options struct {
	// DefaultCategory is appended to every title as a hash-tag. Titles that
	// already carry a category keep it, since the first category wins.
	DefaultCategory string
}

// Builder turns document blocks into drafts against one catalog snapshot.
type Builder struct {
	grammar    *annotation.Grammar
	hashTags   catalog.Resolver[catalog.Match]
	users      catalog.Resolver[catalog.MentionRef]
	importance ImportanceResolver
	opts       Options
}

// NewBuilder creates a builder resolving against snap.
func NewBuilder(g *annotation.Grammar, snap catalog.Snapshot, opts Options) *Builder {
	return NewBuilderWithResolvers(g, snap.HashTags(), snap.Mentions(), snap.Importance(), opts)
}

// NewBuilderWithResolvers creates a builder from explicit resolvers.
func NewBuilderWithResolvers(
	g *annotation.Grammar,
	hashTags catalog.Resolver[catalog.Match],
	users catalog.Resolver[catalog.MentionRef],
	importance ImportanceResolver,
	opts Options,
) *Builder {
	return &Builder{
		grammar:    g,
		hashTags:   hashTags,
		users:      users,
		importance: importance,
		opts:       opts,
	}
}

// BuildAll builds one draft per block, in order. The first failing block
// aborts the whole batch.
func (b *Builder) BuildAll(blocks []document.Block) ([]*Draft, error) {
	drafts := make([]*Draft, 0, len(blocks))
	for _, block := range blocks {
		d, err := b.Build(block)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// Build builds the draft for a single block.
func (b *Builder) Build(block document.Block) (*Draft, error) {
	title := block.Title
	if b.opts.DefaultCategory != "" {
		title += " #" + b.opts.DefaultCategory
	}

	matches, err := resolveAll(b.grammar, b.hashTags, title)
	if err != nil {
		return nil, blockError(block, err)
	}

	importance, err := b.resolveImportance(title)
	if err != nil {
		return nil, blockError(block, err)
	}

	assignees, err := b.resolveAssignees(title)
	if err != nil {
		return nil, blockError(block, err)
	}

	description, err := b.grammar.ReplaceAll(annotation.Mention, block.Description, func(tok annotation.Token) (string, error) {
		user, err := b.users.Resolve(tok.Name())
		if err != nil {
			return "", err
		}
		return "@" + user.Handle, nil
	})
	if err != nil {
		return nil, blockError(block, fmt.Errorf("description: %w", err))
	}

	draft := &Draft{
		Title:             b.grammar.CleanTitle(title),
		Description:       b.grammar.RemoveSubTasks(description),
		EstimatedCost:     b.grammar.Hours(title),
		ImportanceLevelID: importance.ID,
		AssignedUserIDs:   assignees,
		TagIDs:            []catalog.ID{},
		SubTasks:          b.grammar.SubTasks(description),
		DependencyIDs:     []catalog.ID{},
		Block:             block.Number,
	}

	hasCategory := false
	for _, m := range matches {
		switch m := m.(type) {
		case catalog.CategoryRef:
			if !hasCategory {
				draft.CategoryID = m.ID
				hasCategory = true
			}
		case catalog.TagRef:
			if !slices.Contains(draft.TagIDs, m.ID) {
				draft.TagIDs = append(draft.TagIDs, m.ID)
			}
		case catalog.UnresolvedTag:
			// Left to the reconciliation pass.
		default:
			return nil, blockError(block, fmt.Errorf("unexpected hash-tag match %T", m))
		}
	}

	if !hasCategory {
		return nil, fmt.Errorf("ticket %d %q: %w", block.Number, draft.Title, ErrMissingCategory)
	}

	return draft, nil
}

func (b *Builder) resolveImportance(title string) (catalog.ImportanceRef, error) {
	tok, ok := b.grammar.First(annotation.Urgency, title)
	if !ok {
		return b.importance.Default()
	}
	return b.importance.Resolve(tok.Name())
}

func (b *Builder) resolveAssignees(title string) ([]catalog.ID, error) {
	ids := []catalog.ID{}
	for _, tok := range b.grammar.Find(annotation.Mention, title) {
		user, err := b.users.Resolve(tok.Name())
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ids, user.ID) {
			ids = append(ids, user.ID)
		}
	}
	return ids, nil
}

// resolveAll classifies every hash-tag in text.
func resolveAll(g *annotation.Grammar, r catalog.Resolver[catalog.Match], text string) ([]catalog.Match, error) {
	tokens := g.Find(annotation.HashTag, text)
	matches := make([]catalog.Match, 0, len(tokens))
	for _, tok := range tokens {
		m, err := r.Resolve(tok.Name())
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func blockError(block document.Block, err error) error {
	return fmt.Errorf("ticket %d %q: %w", block.Number, block.Title, err)
}
