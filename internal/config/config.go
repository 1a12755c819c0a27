// Package config loads application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lathercraft/brushmatch/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Catalogs CatalogConfig  `yaml:"catalogs"`
	Database DatabaseConfig `yaml:"database"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  logging.Config `yaml:"logging"`
}

// CatalogConfig names the catalog files.
type CatalogConfig struct {
	Brushes        string `yaml:"brushes"`
	Handles        string `yaml:"handles"`
	CorrectMatches string `yaml:"correct_matches"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	InputDir string `yaml:"input_dir"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Catalogs: CatalogConfig{
			Brushes:        "data/brushes.yaml",
			Handles:        "data/handles.yaml",
			CorrectMatches: "data/correct_matches.yaml",
		},
		Database: DatabaseConfig{
			Path: "data/brushmatch.db",
		},
		Watch: WatchConfig{
			InputDir: "data/incoming",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the caller's flag
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("BM_BRUSH_CATALOG"); v != "" {
		c.Catalogs.Brushes = v
	}
	if v := os.Getenv("BM_HANDLE_CATALOG"); v != "" {
		c.Catalogs.Handles = v
	}
	if v := os.Getenv("BM_CORRECT_MATCHES"); v != "" {
		c.Catalogs.CorrectMatches = v
	}
	if v := os.Getenv("BM_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("BM_INPUT_DIR"); v != "" {
		c.Watch.InputDir = v
	}
	if v := os.Getenv("BM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BM_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("BM_LOG_FILE"); v != "" {
		c.Logging.FilePath = v
	}
}

func (c *Config) validate() error {
	for name, path := range map[string]string{
		"catalogs.brushes":         c.Catalogs.Brushes,
		"catalogs.handles":         c.Catalogs.Handles,
		"catalogs.correct_matches": c.Catalogs.CorrectMatches,
	} {
		if path == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	return nil
}

// CatalogDir returns the directory holding the brush catalog, which watch
// mode monitors for edits.
func (c *Config) CatalogDir() string {
	return filepath.Dir(c.Catalogs.Brushes)
}
