package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tickerlens",
	Short: "TickerLens - per-ticker fundamental analysis service",
	Long: `TickerLens Unified CLI

Fetches fundamentals, computes Piotroski / Altman / Rule of 40 scores,
evaluates signal rules and serves the assembled analysis over HTTP.

Usage:
  go run ./cmd/tickerlens [command]

Examples:
  go run ./cmd/tickerlens api
  go run ./cmd/tickerlens analyze AAPL
  go run ./cmd/tickerlens search apple
  go run ./cmd/tickerlens warm`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
