package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hnp/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .hnp/config.json in the current directory",
		Long: `Write a starter project config. The API key is best left to the
` + config.EnvAPIKey + ` environment variable; pass --api-key only for
private checkouts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			path := config.Path(cwd)
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			cfg.ProjectID, _ = cmd.Flags().GetString("project-id")
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
			cfg.DefaultCategory, _ = cmd.Flags().GetString("default-category")
			if backendName != "" {
				cfg.Backend = backendName
			}
			if cfg.Backend == config.BackendHacknPlan {
				// The database is only meaningful for the sqlite backend.
				cfg.DatabasePath = ""
			}

			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Config written to %s\n", color.New(color.FgGreen).Sprint("✓"), path)
			if cfg.Backend == config.BackendHacknPlan && cfg.APIKey == "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Next steps:")
				fmt.Fprintf(out, "  export %s=<your key>\n", config.EnvAPIKey)
				fmt.Fprintln(out, "  hnp catalog categories")
			}
			return nil
		},
	}

	cmd.Flags().String("project-id", "", "Hack'n'Plan project id")
	cmd.Flags().String("api-key", "", "Hack'n'Plan API key")
	cmd.Flags().String("default-category", "", "Category appended to every title")
	cmd.Flags().Bool("force", false, "Overwrite an existing config")

	return cmd
}
