package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/hnp/internal/cli"
	"github.com/example/hnp/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hnp",
		Short:   "hnp - bulk ticket import for Hack'n'Plan",
		Version: version.String(),
		Long: `hnp turns a plain-text ticket document into Hack'n'Plan work items.
Categories, tags, assignees, estimates and importance are written inline as
#hash-tags, @mentions, ~estimates and !urgency markers.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.PersistentPreRunE,
		PersistentPostRun: cli.PersistentPostRun,
	}
	cli.RegisterGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.CheckCmd())
	rootCmd.AddCommand(cli.CatalogCmd())
	rootCmd.AddCommand(cli.InitCmd())

	// Local tracker
	rootCmd.AddCommand(cli.LocalCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
