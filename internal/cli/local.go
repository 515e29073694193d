package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hnp/internal/adapters/sqlite"
	"github.com/example/hnp/internal/config"
	"github.com/example/hnp/internal/db"
	"github.com/example/hnp/internal/wire"
)

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Manage the local sqlite tracker",
	Long: `The local tracker stands in for Hack'n'Plan when running with
--backend sqlite: it holds catalogs and records submitted work items.`,
}

var localInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the local tracker database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		existed := db.Exists(cfg.DatabasePath)
		database, err := wire.OpenLocalDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		out := cmd.OutOrStdout()
		check := color.New(color.FgGreen).Sprint("✓")
		if existed {
			fmt.Fprintf(out, "%s Database at %s is up to date\n", check, cfg.DatabasePath)
		} else {
			fmt.Fprintf(out, "%s Database initialized at %s\n", check, cfg.DatabasePath)
		}

		seed, _ := cmd.Flags().GetBool("seed")
		if !seed {
			return nil
		}
		if err := db.SeedFixtures(database); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		fmt.Fprintf(out, "%s Seeded importance levels and demo catalogs\n", check)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		fmt.Fprintf(out, "  hnp --backend %s catalog categories\n", config.BackendSQLite)
		return nil
	},
}

var localTicketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "List work items submitted to the local tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !db.Exists(cfg.DatabasePath) {
			return fmt.Errorf("no local database at %s (run: hnp local init)", cfg.DatabasePath)
		}

		database, err := wire.OpenLocalDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		items, err := sqlite.NewWorkItemRepository(database, "").List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No work items found")
			return nil
		}

		fmt.Fprintf(out, "Found %d work item(s):\n\n", len(items))
		for _, item := range items {
			fmt.Fprintf(out, "%-6d %s\n", item.ID, item.Title)
			fmt.Fprintf(out, "       category %d, importance %d, estimate %gh\n",
				item.CategoryID, item.ImportanceLevelID, item.EstimatedCost)
			if len(item.TagIDs) > 0 {
				fmt.Fprintf(out, "       tags %s\n", joinIDs(item.TagIDs))
			}
			if len(item.AssignedUserIDs) > 0 {
				fmt.Fprintf(out, "       assignees %s\n", joinIDs(item.AssignedUserIDs))
			}
			for _, task := range item.SubTasks {
				fmt.Fprintf(out, "       [] %s\n", task)
			}
		}
		return nil
	},
}

func init() {
	localInitCmd.Flags().Bool("seed", false, "Seed importance levels and demo catalogs")

	localCmd.AddCommand(localInitCmd)
	localCmd.AddCommand(localTicketsCmd)
}

// LocalCmd returns the local command
func LocalCmd() *cobra.Command {
	return localCmd
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
