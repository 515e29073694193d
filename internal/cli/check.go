package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hnp/internal/ports/primary"
	"github.com/example/hnp/internal/wire"
)

var checkCmd = &cobra.Command{
	Use:   "check <file|->",
	Short: "Validate a ticket document without contacting the tracker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(cmd, args[0])
		if err != nil {
			return err
		}

		resp, err := wire.OfflineImportService(logger).Check(cmd.Context(), primary.CheckRequest{Document: doc})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(resp.Blocks) == 0 {
			fmt.Fprintln(out, "No tickets found in document")
			return nil
		}

		for _, b := range resp.Blocks {
			fmt.Fprintf(out, "%3d  %s\n", b.Number, b.Title)
			if len(b.HashTags) > 0 {
				fmt.Fprintf(out, "     tags:      #%s\n", strings.Join(b.HashTags, " #"))
			}
			if len(b.Mentions) > 0 {
				fmt.Fprintf(out, "     assignees: @%s\n", strings.Join(b.Mentions, " @"))
			}
			if b.Urgency != "" {
				fmt.Fprintf(out, "     urgency:   !%s\n", b.Urgency)
			}
			if b.Estimate > 0 {
				fmt.Fprintf(out, "     estimate:  %gh\n", b.Estimate)
			}
			if b.SubTasks > 0 {
				fmt.Fprintf(out, "     sub-tasks: %d\n", b.SubTasks)
			}
			if len(b.HashTags) == 0 {
				fmt.Fprintf(out, "     %s\n", color.New(color.FgYellow).Sprint("no hash-tags: needs --default-category"))
			}
		}

		fmt.Fprintf(out, "\n%s %d ticket block(s), document is well-formed\n",
			color.New(color.FgGreen).Sprint("✓"), len(resp.Blocks))
		return nil
	},
}

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	return checkCmd
}
