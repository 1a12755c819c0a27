package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/lathercraft/brushmatch/internal/normalize"
)

var matchCmd = &cobra.Command{
	Use:   "match TEXT...",
	Short: "Match one or more brush descriptions and print JSON results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		for _, text := range args {
			result := a.matcher.Match(text, normalize.Normalize(text))
			if err := enc.Encode(result); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
