package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// File layout
const (
	DirName  = ".hnp"
	FileName = "config.json"
)

// Backends
const (
	BackendHacknPlan = "hacknplan" // live Hack'n'Plan REST API
	BackendSQLite    = "sqlite"    // local tracker database
)

// Preview formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Defaults
const (
	DefaultEndpoint       = "https://api.hacknplan.com/v0"
	DefaultTimeoutSeconds = 30
)

// Environment overrides
const (
	EnvAPIKey    = "HACKNPLAN_API_KEY"
	EnvProjectID = "HACKNPLAN_PROJECT_ID"
	EnvBackend   = "HNP_BACKEND"
)

var (
	ErrMissingAPIKey    = errors.New("missing API key (set api_key or " + EnvAPIKey + ")")
	ErrMissingProjectID = errors.New("missing project id (set project_id or " + EnvProjectID + ")")
)

// Config represents the hnp configuration
type Config struct {
	APIEndpoint     string `json:"api_endpoint,omitempty"`
	ProjectID       string `json:"project_id,omitempty"`
	APIKey          string `json:"api_key,omitempty"`
	Backend         string `json:"backend,omitempty"`
	DatabasePath    string `json:"database_path,omitempty"`
	DefaultCategory string `json:"default_category,omitempty"` // without the leading '#'
	PreviewFormat   string `json:"preview_format,omitempty"`
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty"`

	// Source is the file the config was read from, empty when none was found.
	Source string `json:"-"`
}

// Default returns a config with every default filled in.
func Default() *Config {
	return &Config{
		APIEndpoint:    DefaultEndpoint,
		Backend:        BackendHacknPlan,
		DatabasePath:   DefaultDatabasePath(),
		PreviewFormat:  FormatJSON,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// DefaultDatabasePath returns ~/.hnp/hnp.db, or a path relative to the
// working directory when the home directory is unknown.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DirName, "hnp.db")
	}
	return filepath.Join(home, DirName, "hnp.db")
}

// Path returns the project config path under dir.
func Path(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// LoadConfig reads .hnp/config.json from the specified directory. A missing
// file is not an error: defaults apply. Environment overrides are applied
// on top in both cases.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := LoadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		cfg.ApplyEnv(os.Getenv)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// LoadExplicit reads a config file named on the command line. The file must
// exist.
func LoadExplicit(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// LoadFile parses a single JSONC config file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	cfg.DefaultCategory = strings.TrimPrefix(cfg.DefaultCategory, "#")
	return cfg, nil
}

// ApplyEnv overrides credentials and backend from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvProjectID); v != "" {
		c.ProjectID = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Backend = v
	}
}

// Validate checks the config is usable for the selected backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendHacknPlan:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
		if c.ProjectID == "" {
			return ErrMissingProjectID
		}
		if c.APIEndpoint == "" {
			return fmt.Errorf("api_endpoint must not be empty")
		}
	case BackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database_path must not be empty for the %s backend", BackendSQLite)
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendHacknPlan, BackendSQLite)
	}

	if c.PreviewFormat != FormatJSON && c.PreviewFormat != FormatYAML {
		return fmt.Errorf("unknown preview format %q (want %s or %s)", c.PreviewFormat, FormatJSON, FormatYAML)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if strings.ContainsFunc(c.DefaultCategory, isSpaceOrSigil) {
		return fmt.Errorf("default_category must be a single word, got %q", c.DefaultCategory)
	}
	return nil
}

// Timeout returns the HTTP request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SaveConfig writes .hnp/config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	hnpDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(hnpDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(Path(dir), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func isSpaceOrSigil(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '#'
}
