// Package cli implements the fuelplanner-import command tree: a cobra CLI
// that loads a fuel-price CSV and normalizes it into the catalog store.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the import CLI.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fuelplanner-import",
		Short: "Import fuel station prices into the route planner catalog",
		Long: `fuelplanner-import reads a truckstop fuel-price CSV, normalizes and
deduplicates it to one cheapest price per physical address, and upserts
the result into the catalog store.

Examples:
  fuelplanner-import load --csv-path fuel-prices.csv
  fuelplanner-import load --csv-path fuel-prices.csv --replace`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(NewLoadCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
