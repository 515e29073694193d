package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/example/hnp/internal/config"
)

var (
	testRoot     *cobra.Command
	testRootOnce sync.Once
)

func init() {
	color.NoColor = true
}

func rootForTest() *cobra.Command {
	testRootOnce.Do(func() {
		testRoot = &cobra.Command{
			Use:               "hnp",
			SilenceUsage:      true,
			SilenceErrors:     true,
			PersistentPreRunE: PersistentPreRunE,
			PersistentPostRun: PersistentPostRun,
		}
		RegisterGlobalFlags(testRoot)
		testRoot.AddCommand(ImportCmd(), CheckCmd(), CatalogCmd(), InitCmd(), LocalCmd())
	})
	return testRoot
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvProjectID, "")
	t.Setenv(config.EnvBackend, "")

	root := rootForTest()
	resetFlags(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(bytes.NewReader(nil))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// localConfig writes a config selecting the sqlite backend and returns its path.
func localConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Backend = config.BackendSQLite
	cfg.DatabasePath = filepath.Join(dir, "hnp.db")
	require.NoError(t, config.SaveConfig(dir, cfg))

	return config.Path(dir)
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckCommand(t *testing.T) {
	doc := writeDocument(t, "Fix crash #bugs @ada ~2h\n===\n[] repro\n---\nPlain ticket\n")

	out, err := execute(t, "check", doc)
	require.NoError(t, err)

	assert.Contains(t, out, "  1  Fix crash\n")
	assert.Contains(t, out, "tags:      #bugs")
	assert.Contains(t, out, "assignees: @ada")
	assert.Contains(t, out, "estimate:  2h")
	assert.Contains(t, out, "sub-tasks: 1")
	assert.Contains(t, out, "no hash-tags: needs --default-category")
	assert.Contains(t, out, "2 ticket block(s), document is well-formed")
}

func TestCheckCommand_Malformed(t *testing.T) {
	doc := writeDocument(t, "A\n===\nb\n===\nc")

	_, err := execute(t, "check", doc)
	assert.ErrorContains(t, err, "malformed document")
}

func TestLocalImportFlow(t *testing.T) {
	cfgPath := localConfig(t)

	out, err := execute(t, "--config", cfgPath, "local", "init", "--seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized at")
	assert.Contains(t, out, "Seeded importance levels")

	out, err = execute(t, "--config", cfgPath, "catalog", "importance")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 4 importance:")
	assert.Contains(t, out, "Normal (default)")

	doc := writeDocument(t, "Crash on start #bugs #fresh @grace !high\n---\nNew art ~1d\n")
	out, err = execute(t, "--config", cfgPath, "import", "--yes", "--default-category", "art", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "  - fresh")
	assert.Contains(t, out, "Uploading ticket:")
	assert.Contains(t, out, "Created 2 ticket(s) and 1 tag(s)")

	out, err = execute(t, "--config", cfgPath, "local", "tickets")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 work item(s)")
	assert.Contains(t, out, "Crash on start")
	assert.Contains(t, out, "estimate 8h")

	out, err = execute(t, "--config", cfgPath, "catalog", "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "fresh")
}

func TestImportCommand_DryRunExport(t *testing.T) {
	cfgPath := localConfig(t)
	_, err := execute(t, "--config", cfgPath, "local", "init", "--seed")
	require.NoError(t, err)

	doc := writeDocument(t, "Preview #bugs #shiny\n")
	exportPath := filepath.Join(t.TempDir(), "preview.json")

	out, err := execute(t, "--config", cfgPath, "import", "-n", "--preview-out", exportPath, doc)
	require.NoError(t, err)
	assert.Contains(t, out, `"Pretend" creating tag:`)
	assert.Contains(t, out, `"Pretend" uploading ticket:`)
	assert.Contains(t, out, "Previewed 1 ticket(s), 1 new tag(s)")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"workItems"`)

	out, err = execute(t, "--config", cfgPath, "local", "tickets")
	require.NoError(t, err)
	assert.Contains(t, out, "No work items found")
}

func TestImportCommand_PreviewOutRequiresDryRun(t *testing.T) {
	_, err := execute(t, "import", "--preview-out", "x.json", "doc.md")
	assert.EqualError(t, err, "--preview-out requires --dry-run")
}

func TestImportCommand_MissingCredentials(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"backend": "hacknplan"}`), 0644))

	_, err := execute(t, "--config", cfgPath, "import", writeDocument(t, "A #bugs"))
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestImportCommand_NonInteractiveNeedsYes(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	cfgPath := localConfig(t)
	_, err := execute(t, "--config", cfgPath, "local", "init", "--seed")
	require.NoError(t, err)

	_, err = execute(t, "--config", cfgPath, "import", writeDocument(t, "A #bugs #unseen"))
	assert.ErrorContains(t, err, "stdin is not a terminal")
}

func TestCatalogCommand_UnknownKind(t *testing.T) {
	_, err := execute(t, "catalog", "sprints")
	assert.ErrorContains(t, err, `unknown catalog "sprints"`)
}

func TestLocalTickets_NoDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Backend = config.BackendSQLite
	cfg.DatabasePath = filepath.Join(dir, "missing.db")
	require.NoError(t, config.SaveConfig(dir, cfg))

	_, err := execute(t, "--config", config.Path(dir), "local", "tickets")
	assert.ErrorContains(t, err, "run: hnp local init")
}
