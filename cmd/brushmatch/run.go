package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lathercraft/brushmatch/internal/batch"
	"github.com/lathercraft/brushmatch/internal/database"
	"github.com/lathercraft/brushmatch/internal/store"
)

var (
	runInput  string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run --input FILE",
	Short: "Match an NDJSON batch file and persist the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		f, err := os.Open(runInput)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close() //nolint:errcheck

		var svc *store.Service
		if !runDryRun {
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
			svc = store.NewService(db)
		}

		name := batchName(runInput)
		runner := batch.NewRunner(a.matcher, svc, a.logger)
		stats, err := runner.Run(cmd.Context(), name, f)
		if err != nil {
			return err
		}

		a.logger.Info("run finished",
			slog.String("batch", name),
			slog.Int("total", stats.Total),
			slog.Int("matched", stats.Matched),
			slog.Int("unmatched", stats.Unmatched),
		)
		fmt.Printf("%s: %d records, %d matched, %d unmatched\n",
			name, stats.Total, stats.Matched, stats.Unmatched)
		return nil
	},
}

// batchName derives the batch label from the input filename, e.g.
// "2025-04.ndjson" becomes "2025-04".
func batchName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "NDJSON input file")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "match without persisting")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
