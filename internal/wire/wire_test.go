package wire

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hnp/internal/adapters/preview"
	"github.com/example/hnp/internal/adapters/sqlite"
	"github.com/example/hnp/internal/config"
	"github.com/example/hnp/internal/db"
	"github.com/example/hnp/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

func seededConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Backend = config.BackendSQLite
	cfg.DatabasePath = filepath.Join(t.TempDir(), "hnp.db")

	database, err := OpenLocalDB(cfg)
	require.NoError(t, err)
	require.NoError(t, db.SeedFixtures(database))
	require.NoError(t, database.Close())

	return cfg
}

func TestBuild_SQLiteImport(t *testing.T) {
	cfg := seededConfig(t)
	var out bytes.Buffer

	a, err := Build(Options{Config: cfg, Out: &out, AssumeYes: true, RunID: "run-9"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	assert.Nil(t, a.Preview)

	doc := "Crash on start #bugs #newtag @ada ~3h !urgent\n===\nSee log\n[] repro"
	resp, err := a.ImportService.Import(context.Background(), primary.ImportRequest{Document: doc})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Submitted)
	assert.Equal(t, []string{"newtag"}, resp.CreatedTags)
	assert.Contains(t, out.String(), "Uploading ticket:")

	require.NoError(t, a.Close())

	database, err := OpenLocalDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	items, err := sqlite.NewWorkItemRepository(database, "").List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Crash on start", items[0].Title)
	assert.Equal(t, 3.0, items[0].EstimatedCost)
	assert.Equal(t, []string{"repro"}, items[0].SubTasks)
	assert.Equal(t, "run-9", items[0].RequestID)
	assert.Len(t, items[0].TagIDs, 1)
}

func TestBuild_DryRunDoesNotMutate(t *testing.T) {
	cfg := seededConfig(t)
	var out bytes.Buffer

	a, err := Build(Options{Config: cfg, Out: &out, DryRun: true, PreviewFormat: preview.FormatYAML})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NotNil(t, a.Preview)

	resp, err := a.ImportService.Import(context.Background(), primary.ImportRequest{
		Document: "Preview me #bugs #brandnew",
		Preview:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Submitted)
	assert.Contains(t, out.String(), `"Pretend" creating tag:`)
	assert.Contains(t, out.String(), "title: Preview me")

	tags, err := a.CatalogService.ListCatalog(context.Background(), primary.CatalogTags)
	require.NoError(t, err)
	for _, tag := range tags {
		assert.NotEqual(t, "brandnew", tag.Name)
	}
}

func TestBuild_HacknPlanRequiresCredentials(t *testing.T) {
	cfg := config.Default()

	_, err := Build(Options{Config: cfg, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "required"))
}

func TestBuild_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "jira"

	_, err := Build(Options{Config: cfg})
	assert.ErrorContains(t, err, `unknown backend "jira"`)
}

func TestOfflineImportService(t *testing.T) {
	resp, err := OfflineImportService(nil).Check(context.Background(), primary.CheckRequest{Document: "A #bugs\n---\nB"})
	require.NoError(t, err)
	assert.Len(t, resp.Blocks, 2)
}
