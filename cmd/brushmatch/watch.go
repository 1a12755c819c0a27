package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lathercraft/brushmatch/internal/batch"
	"github.com/lathercraft/brushmatch/internal/catalog"
	"github.com/lathercraft/brushmatch/internal/database"
	"github.com/lathercraft/brushmatch/internal/match"
	"github.com/lathercraft/brushmatch/internal/store"
	"github.com/lathercraft/brushmatch/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input directory for batches and the catalogs for edits",
	Long: `Watch mode processes every new .ndjson file appearing in the input
directory. A catalog edit builds a fresh matcher; the running matcher stays
in service if the edited catalogs fail to compile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		db, err := database.Open(a.cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				a.logger.Error("closing database", "error", err)
			}
		}()
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		svc := store.NewService(db)

		if err := os.MkdirAll(a.cfg.Watch.InputDir, 0o750); err != nil {
			return fmt.Errorf("creating input directory: %w", err)
		}

		// The active matcher is swapped wholesale on reload; each
		// instance stays immutable.
		var current atomic.Pointer[match.Matcher]
		current.Store(a.matcher)

		reload := func(ctx context.Context) error {
			set, err := catalog.LoadSet(catalog.Paths{
				Brushes:        a.cfg.Catalogs.Brushes,
				Handles:        a.cfg.Catalogs.Handles,
				CorrectMatches: a.cfg.Catalogs.CorrectMatches,
			})
			if err != nil {
				return err
			}
			current.Store(match.New(set, a.logger))
			a.logger.Info("catalogs reloaded", "summary", set.Summary())
			return nil
		}

		process := func(ctx context.Context, path string) error {
			f, err := os.Open(path) //nolint:gosec // G304: path comes from the watched directory
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck
			runner := batch.NewRunner(current.Load(), svc, a.logger)
			_, err = runner.Run(ctx, batchName(path), f)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watcher.NewService(a.cfg.CatalogDir(), a.cfg.Watch.InputDir, reload, process, a.logger)
		return w.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
