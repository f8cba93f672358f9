// Package cli implements the fuelplanner-geocode command tree: a cobra
// CLI that resolves coordinates for catalog stations imported without them.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fuelplanner-geocode",
		Short: "Geocode imported fuel stations that are missing coordinates",
		Long: `fuelplanner-geocode resolves latitude/longitude for catalog stations
that were imported without coordinates and are not flagged as failed,
paging through them and persisting each attempt.

Examples:
  fuelplanner-geocode run --limit 200
  fuelplanner-geocode run --limit 200 --sleep`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(NewRunCommand())

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
