package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hnp/internal/adapters/preview"
	"github.com/example/hnp/internal/ports/primary"
	"github.com/example/hnp/internal/wire"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Create Hack'n'Plan work items from a ticket document",
	Long: `Import reads a ticket document, resolves its annotations against the
project's catalogs and creates one work item per block.

Blocks are separated by a line of "---". Within a block, a line of "==="
separates the title from the description. Titles carry the annotations:

  #category #tag   category (first match) and tags
  @user            assignee
  ~1d2h30m         estimate (a day is 8 hours)
  !high            importance level

Description lines starting with "[]" become sub-tasks. Tags that do not
exist yet are created in bulk after confirmation.`,
	Example: `  hnp import sprint.md
  hnp import --dry-run --preview-format yaml sprint.md
  cat sprint.md | hnp import --yes -`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolP("dry-run", "n", false, "Print the would-be payloads instead of creating anything")
	importCmd.Flags().String("default-category", "", "Category appended to every title (without #)")
	importCmd.Flags().BoolP("yes", "y", false, "Create unmatched tags without asking")
	importCmd.Flags().String("preview-format", "", "Preview format: json or yaml")
	importCmd.Flags().String("preview-out", "", "Also write the dry-run payloads to this file")
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	return importCmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	assumeYes, _ := cmd.Flags().GetBool("yes")
	previewOut, _ := cmd.Flags().GetString("preview-out")

	if previewOut != "" && !dryRun {
		return fmt.Errorf("--preview-out requires --dry-run")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("default-category") {
		cfg.DefaultCategory, _ = cmd.Flags().GetString("default-category")
	}
	if cmd.Flags().Changed("preview-format") {
		cfg.PreviewFormat, _ = cmd.Flags().GetString("preview-format")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := preview.ParseFormat(cfg.PreviewFormat)
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a, err := wire.Build(wire.Options{
		Config:        cfg,
		Logger:        logger,
		RunID:         runID,
		Out:           out,
		DryRun:        dryRun,
		AssumeYes:     assumeYes,
		PreviewFormat: format,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.ImportService.Import(cmd.Context(), primary.ImportRequest{
		Document:        doc,
		DefaultCategory: cfg.DefaultCategory,
		Preview:         dryRun,
	})
	if err != nil {
		if resp != nil && resp.Submitted > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d ticket(s) were created before the failure\n",
				resp.Submitted, len(resp.Drafts))
		}
		return err
	}

	if resp.Blocks == 0 {
		fmt.Fprintln(out, "No tickets found in document")
		return nil
	}

	if previewOut != "" {
		if err := a.Preview.Export(previewOut); err != nil {
			return err
		}
		fmt.Fprintf(out, "Preview written to %s\n", previewOut)
	}

	check := color.New(color.FgGreen).Sprint("✓")
	if dryRun {
		fmt.Fprintf(out, "%s Previewed %d ticket(s), %d new tag(s)\n", check, resp.Submitted, len(resp.CreatedTags))
		return nil
	}
	fmt.Fprintf(out, "%s Created %d ticket(s)", check, resp.Submitted)
	if len(resp.CreatedTags) > 0 {
		fmt.Fprintf(out, " and %d tag(s)", len(resp.CreatedTags))
	}
	fmt.Fprintln(out)
	return nil
}
