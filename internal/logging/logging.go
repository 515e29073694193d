// Package logging builds the structured logger shared by every command.
package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Verbose bool
	RunID   string   // attached to every entry; generated when empty
	Outputs []string // defaults to stderr
}

// Level returns the minimum level for the given verbosity. Quiet runs only
// surface warnings so stdout stays clean for previews.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// NewRunID returns a fresh identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// New builds a console-encoded production logger.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(Level(opts.Verbose))
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = !opts.Verbose
	config.DisableCaller = !opts.Verbose
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if len(opts.Outputs) > 0 {
		config.OutputPaths = opts.Outputs
	}

	runID := opts.RunID
	if runID == "" {
		runID = NewRunID()
	}

	logger, err := config.Build(zap.Fields(zap.String("run_id", runID)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
