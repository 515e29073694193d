package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/hnp/internal/core/annotation"
	"github.com/example/hnp/internal/core/catalog"
	"github.com/example/hnp/internal/core/document"
	"github.com/example/hnp/internal/core/ticket"
	"github.com/example/hnp/internal/ports/primary"
	"github.com/example/hnp/internal/ports/secondary"
)

// ErrDeclined is returned when the operator refuses bulk tag creation.
var ErrDeclined = errors.New("aborted: tag creation declined")

// ImportServiceImpl implements the ImportService interface.
type ImportServiceImpl struct {
	catalogs  secondary.CatalogSource
	tags      secondary.TagCreator
	sink      secondary.TicketSink
	confirmer secondary.Confirmer
	grammar   *annotation.Grammar
	logger    *zap.Logger
}

// NewImportService creates a new ImportService with injected dependencies.
func NewImportService(
	catalogs secondary.CatalogSource,
	tags secondary.TagCreator,
	sink secondary.TicketSink,
	confirmer secondary.Confirmer,
	logger *zap.Logger,
) *ImportServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportServiceImpl{
		catalogs:  catalogs,
		tags:      tags,
		sink:      sink,
		confirmer: confirmer,
		grammar:   annotation.New(),
		logger:    logger,
	}
}

// Import runs the full pipeline. Nothing is created or submitted unless every
// block builds; submissions stop at the first failure and earlier ones stay.
func (s *ImportServiceImpl) Import(ctx context.Context, req primary.ImportRequest) (*primary.ImportResponse, error) {
	// The document is validated before any tracker call.
	blocks, err := document.Split(req.Document)
	if err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	resp := &primary.ImportResponse{Blocks: len(blocks)}
	if len(blocks) == 0 {
		s.logger.Warn("document contains no tickets")
		return resp, nil
	}

	initial, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	unmatched, err := ticket.CollectUnmatchedTags(s.grammar, initial.HashTags(), blocks)
	if err != nil {
		return nil, err
	}
	resp.UnmatchedTags = unmatched

	if len(unmatched) > 0 {
		s.logger.Info("unmatched tags", zap.Strings("tags", unmatched))
		if !req.Preview {
			ok, err := s.confirmer.Confirm(ctx, unmatchedTagsMessage(unmatched))
			if err != nil {
				return nil, fmt.Errorf("failed to confirm tag creation: %w", err)
			}
			if !ok {
				return nil, ErrDeclined
			}
		}
		for _, name := range unmatched {
			if err := s.tags.CreateTag(ctx, name); err != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
			}
			resp.CreatedTags = append(resp.CreatedTags, name)
		}
	}

	// The build pass only ever sees the refreshed taxonomy.
	refreshed, err := s.refreshTaxonomy(ctx, initial)
	if err != nil {
		return nil, err
	}

	builder := ticket.NewBuilder(s.grammar, refreshed, ticket.Options{DefaultCategory: req.DefaultCategory})
	drafts, err := builder.BuildAll(blocks)
	if err != nil {
		return nil, err
	}
	resp.Drafts = drafts

	for _, d := range drafts {
		if err := s.sink.SubmitTicket(ctx, d); err != nil {
			return resp, fmt.Errorf("failed to submit ticket %d %q: %w", d.Block, d.Title, err)
		}
		resp.Submitted++
		s.logger.Debug("ticket submitted", zap.Int("block", d.Block), zap.String("title", d.Title))
	}

	return resp, nil
}

// Check scans a document offline.
func (s *ImportServiceImpl) Check(ctx context.Context, req primary.CheckRequest) (*primary.CheckResponse, error) {
	blocks, err := document.Split(req.Document)
	if err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	resp := &primary.CheckResponse{}
	for _, b := range blocks {
		summary := &primary.BlockSummary{
			Number:   b.Number,
			Title:    s.grammar.CleanTitle(b.Title),
			HashTags: tokenNames(s.grammar.Find(annotation.HashTag, b.Title)),
			Mentions: tokenNames(s.grammar.Find(annotation.Mention, b.Title)),
			Estimate: s.grammar.Hours(b.Title),
			SubTasks: len(s.grammar.Find(annotation.SubTask, b.Description)),
		}
		if tok, ok := s.grammar.First(annotation.Urgency, b.Title); ok {
			summary.Urgency = tok.Name()
		}
		resp.Blocks = append(resp.Blocks, summary)
	}
	return resp, nil
}

func (s *ImportServiceImpl) fetchSnapshot(ctx context.Context) (catalog.Snapshot, error) {
	categories, tags, err := s.fetchTaxonomy(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}

	users, err := s.catalogs.ListUsers(ctx)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	levels, err := s.catalogs.ListImportanceLevels(ctx)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to fetch importance levels: %w", err)
	}

	snap := catalog.Snapshot{
		Categories:       categories,
		Tags:             tags,
		Users:            make([]catalog.User, len(users)),
		ImportanceLevels: make([]catalog.ImportanceLevel, len(levels)),
	}
	for i, u := range users {
		snap.Users[i] = catalog.User{ID: u.ID, Name: u.Name, Username: u.Username}
	}
	for i, l := range levels {
		snap.ImportanceLevels[i] = catalog.ImportanceLevel{ID: l.ID, Name: l.Name, IsDefault: l.IsDefault}
	}

	s.logger.Debug("catalogs fetched",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("tags", len(snap.Tags)),
		zap.Int("users", len(snap.Users)),
		zap.Int("importance_levels", len(snap.ImportanceLevels)))

	return snap, nil
}

func (s *ImportServiceImpl) refreshTaxonomy(ctx context.Context, snap catalog.Snapshot) (catalog.Snapshot, error) {
	categories, tags, err := s.fetchTaxonomy(ctx)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to refresh catalogs: %w", err)
	}
	return snap.WithTaxonomy(categories, tags), nil
}

func (s *ImportServiceImpl) fetchTaxonomy(ctx context.Context) ([]catalog.Category, []catalog.Tag, error) {
	categoryRecords, err := s.catalogs.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	tagRecords, err := s.catalogs.ListTags(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch tags: %w", err)
	}

	categories := make([]catalog.Category, len(categoryRecords))
	for i, r := range categoryRecords {
		categories[i] = catalog.Category{ID: r.ID, Name: r.Name}
	}
	tags := make([]catalog.Tag, len(tagRecords))
	for i, r := range tagRecords {
		tags[i] = catalog.Tag{ID: r.ID, Name: r.Name}
	}
	return categories, tags, nil
}

func unmatchedTagsMessage(names []string) string {
	var b strings.Builder
	b.WriteString("Could not find tags on Hack'n'Plan for the following list, would you like to add these in bulk?\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  - %s\n", n)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func tokenNames(tokens []annotation.Token) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.Name()
	}
	return names
}

// Ensure ImportServiceImpl implements the interface.
var _ primary.ImportService = (*ImportServiceImpl)(nil)
