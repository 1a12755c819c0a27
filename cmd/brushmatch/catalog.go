package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lathercraft/brushmatch/internal/catalog"
	"github.com/lathercraft/brushmatch/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog maintenance commands",
}

var catalogLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Compile the catalogs and report problems",
	Long: `Loads and compiles every catalog file exactly as the matcher would.
An invalid pattern or a dangling correct-match reference fails with the
offending brand, model, and pattern named.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		set, err := catalog.LoadSet(catalog.Paths{
			Brushes:        cfg.Catalogs.Brushes,
			Handles:        cfg.Catalogs.Handles,
			CorrectMatches: cfg.Catalogs.CorrectMatches,
		})
		if err != nil {
			return err
		}

		fmt.Printf("ok: %s\n", set.Summary())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogLintCmd)
	rootCmd.AddCommand(catalogCmd)
}
