package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/hnp/internal/config"
	"github.com/example/hnp/internal/core/document"
	"github.com/example/hnp/internal/ctxutil"
	"github.com/example/hnp/internal/logging"
)

// Global flag values and per-invocation state.
var (
	configPath  string
	backendName string
	verbose     bool

	logger = zap.NewNop()
	runID  string
)

// RegisterGlobalFlags adds the flags every command accepts.
func RegisterGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a config file (default .hnp/config.json)")
	flags.StringVar(&backendName, "backend", "", "Tracker backend: hacknplan or sqlite")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

// PersistentPreRunE builds the logger for the invocation.
func PersistentPreRunE(cmd *cobra.Command, args []string) error {
	runID = logging.NewRunID()

	l, err := logging.New(logging.Options{Verbose: verbose, RunID: runID})
	if err != nil {
		return err
	}
	logger = l
	cmd.SetContext(ctxutil.WithRunID(cmd.Context(), runID))
	logger.Debug("starting", zap.String("command", cmd.CommandPath()))
	return nil
}

// PersistentPostRun flushes the logger.
func PersistentPostRun(cmd *cobra.Command, args []string) {
	_ = logger.Sync()
}

// loadConfig resolves the config file, environment and global flags.
// Command-specific flags are applied by the caller before Validate.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadExplicit(configPath)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err = config.LoadConfig(cwd)
	}
	if err != nil {
		return nil, err
	}

	if backendName != "" {
		cfg.Backend = backendName
	}
	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Source))
	}
	return cfg, nil
}

// readDocument reads the ticket document from a file, or stdin for "-".
func readDocument(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := document.Read(r)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return doc, nil
}
