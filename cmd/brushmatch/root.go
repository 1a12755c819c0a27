package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lathercraft/brushmatch/internal/catalog"
	"github.com/lathercraft/brushmatch/internal/config"
	"github.com/lathercraft/brushmatch/internal/logging"
	"github.com/lathercraft/brushmatch/internal/match"
	"github.com/lathercraft/brushmatch/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "brushmatch",
	Short:         "Classify shaving-brush descriptions into brand/model records",
	Version:       fmt.Sprintf("%s (%s)", version.Version, version.Commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", envOr("BM_CONFIG_PATH", "brushmatch.yaml"), "config file path")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// app bundles what every command needs after startup.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	logMgr  *logging.Manager
	matcher *match.Matcher
}

// newApp loads config, logging, and the compiled catalogs. Catalog failures
// are configuration defects and abort startup.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logMgr, logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	set, err := catalog.LoadSet(catalog.Paths{
		Brushes:        cfg.Catalogs.Brushes,
		Handles:        cfg.Catalogs.Handles,
		CorrectMatches: cfg.Catalogs.CorrectMatches,
	})
	if err != nil {
		logMgr.Close() //nolint:errcheck
		return nil, err
	}

	logger.Debug("catalogs loaded", slog.String("summary", set.Summary()))

	return &app{
		cfg:     cfg,
		logger:  logger,
		logMgr:  logMgr,
		matcher: match.New(set, logger),
	}, nil
}

func (a *app) close() {
	a.logMgr.Close() //nolint:errcheck
}
