package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lathercraft/brushmatch/internal/database"
	"github.com/lathercraft/brushmatch/internal/match"
	"github.com/lathercraft/brushmatch/internal/store"
)

var (
	statsBatch     string
	statsUnmatched int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize persisted match results",
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
		defer db.Close() //nolint:errcheck
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		svc := store.NewService(db)

		st, err := svc.Stats(cmd.Context(), statsBatch)
		if err != nil {
			return err
		}

		fmt.Printf("total: %d\n", st.Total)
		for _, t := range []match.Type{match.TypeExact, match.TypeRegex, match.TypeAlias, match.TypeBrand} {
			if n := st.ByType[t]; n > 0 {
				fmt.Printf("  %s: %d\n", t, n)
			}
		}
		fmt.Printf("  unmatched: %d\n", st.Unmatched)

		if statsUnmatched > 0 {
			originals, err := svc.Unmatched(cmd.Context(), statsUnmatched)
			if err != nil {
				return err
			}
			if len(originals) > 0 {
				fmt.Println("recent unmatched:")
				for _, o := range originals {
					fmt.Printf("  %s\n", o)
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsBatch, "batch", "", "limit to one batch")
	statsCmd.Flags().IntVar(&statsUnmatched, "unmatched", 0, "also list up to N recent unmatched originals")
	rootCmd.AddCommand(statsCmd)
}
