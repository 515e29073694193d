// Package wire provides dependency injection for hnp. It assembles the
// services for one invocation from the resolved configuration.
package wire

import (
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/example/hnp/internal/adapters/hacknplan"
	"github.com/example/hnp/internal/adapters/preview"
	"github.com/example/hnp/internal/adapters/prompt"
	"github.com/example/hnp/internal/adapters/sqlite"
	"github.com/example/hnp/internal/app"
	"github.com/example/hnp/internal/config"
	"github.com/example/hnp/internal/db"
	"github.com/example/hnp/internal/ports/primary"
	"github.com/example/hnp/internal/ports/secondary"
)

// Options controls how the services are assembled.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	RunID  string
	// Out receives previews, upload announcements and prompts.
	Out io.Writer
	// DryRun routes tag creation and ticket submission to a preview renderer.
	DryRun bool
	// AssumeYes answers every confirmation with yes.
	AssumeYes bool
	// PreviewFormat selects the renderer format in dry-run mode.
	PreviewFormat preview.Format
}

// App holds the assembled services for one invocation.
type App struct {
	ImportService  primary.ImportService
	CatalogService primary.CatalogService

	// Preview is set in dry-run mode.
	Preview *preview.Renderer

	closers []func() error
}

// tracker bundles the three tracker-facing ports of a backend.
type tracker struct {
	catalogs secondary.CatalogSource
	tags     secondary.TagCreator
	sink     secondary.TicketSink
}

// Build assembles services for the configured backend.
func Build(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("wire: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{}
	t, err := a.openBackend(opts, logger)
	if err != nil {
		return nil, err
	}

	sink := secondary.TicketSink(preview.NewAnnouncer(t.sink, opts.Out))
	tags := t.tags
	if opts.DryRun {
		a.Preview = preview.NewRenderer(opts.Out, opts.PreviewFormat)
		sink = a.Preview
		tags = a.Preview
	}

	var confirmer secondary.Confirmer
	if opts.AssumeYes {
		confirmer = prompt.NewAutoConfirmer(opts.Out)
	} else {
		confirmer = prompt.NewTerminalConfirmer(opts.Out)
	}

	a.ImportService = app.NewImportService(t.catalogs, tags, sink, confirmer, logger)
	a.CatalogService = app.NewCatalogService(t.catalogs)

	logger.Debug("services assembled",
		zap.String("backend", opts.Config.Backend),
		zap.Bool("dry_run", opts.DryRun))

	return a, nil
}

func (a *App) openBackend(opts Options, logger *zap.Logger) (tracker, error) {
	cfg := opts.Config

	switch cfg.Backend {
	case config.BackendHacknPlan:
		client, err := hacknplan.NewClient(hacknplan.ClientConfig{
			Endpoint:  cfg.APIEndpoint,
			ProjectID: cfg.ProjectID,
			APIKey:    cfg.APIKey,
			Timeout:   cfg.Timeout(),
			RunID:     opts.RunID,
			Logger:    logger,
		})
		if err != nil {
			return tracker{}, err
		}
		a.closers = append(a.closers, func() error {
			client.CloseIdleConnections()
			return nil
		})
		return tracker{catalogs: client, tags: client, sink: client}, nil

	case config.BackendSQLite:
		database, err := OpenLocalDB(cfg)
		if err != nil {
			return tracker{}, err
		}
		a.closers = append(a.closers, database.Close)
		catalogs := sqlite.NewCatalogRepository(database)
		return tracker{
			catalogs: catalogs,
			tags:     catalogs,
			sink:     sqlite.NewWorkItemRepository(database, opts.RunID),
		}, nil

	default:
		return tracker{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Close releases backend resources.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// OfflineImportService returns an ImportService for commands that never
// reach a tracker, such as check.
func OfflineImportService(logger *zap.Logger) primary.ImportService {
	return app.NewImportService(nil, nil, nil, nil, logger)
}

// OpenLocalDB opens the sqlite tracker database named by cfg.
func OpenLocalDB(cfg *config.Config) (*sql.DB, error) {
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database %s: %w", cfg.DatabasePath, err)
	}
	return database, nil
}
