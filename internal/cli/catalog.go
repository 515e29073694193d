package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/hnp/internal/ports/primary"
	"github.com/example/hnp/internal/wire"
)

var catalogCmd = &cobra.Command{
	Use:       "catalog <" + kindList() + ">",
	Short:     "List a project catalog",
	Long:      "List the entries the annotations in a document are resolved against.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: catalogKindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := primary.ParseCatalogKind(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		a, err := wire.Build(wire.Options{Config: cfg, Logger: logger, RunID: runID, Out: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.CatalogService.ListCatalog(cmd.Context(), kind)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintf(out, "No %s found\n", kind)
			return nil
		}

		fmt.Fprintf(out, "Found %d %s:\n\n", len(items), kind)
		for _, item := range items {
			fmt.Fprintf(out, "%-10d %s", item.ID, item.Name)
			if item.Detail != "" {
				fmt.Fprintf(out, " (%s)", item.Detail)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

// CatalogCmd returns the catalog command
func CatalogCmd() *cobra.Command {
	return catalogCmd
}

func catalogKindNames() []string {
	names := make([]string, len(primary.CatalogKinds))
	for i, k := range primary.CatalogKinds {
		names[i] = string(k)
	}
	return names
}

// kindList renders the accepted kinds for help output.
func kindList() string {
	return strings.Join(catalogKindNames(), "|")
}
