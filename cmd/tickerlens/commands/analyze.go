package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER [TICKER...]",
	Short: "Run the analysis pipeline for one or more tickers",
	Long: `Fetches fundamentals, computes scores and signals, and prints the
assembled analysis as JSON.

Example:
  go run ./cmd/tickerlens analyze AAPL
  go run ./cmd/tickerlens analyze AAPL MSFT --refresh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeRefresh bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeRefresh, "refresh", false, "bypass the cache and refetch")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, ticker := range args {
		result, err := analyzeOne(ctx, app, ticker)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", ticker, err)
		}

		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}

	return nil
}

func analyzeOne(ctx context.Context, app *app, ticker string) (interface{}, error) {
	if analyzeRefresh {
		return app.analyzer.Refresh(ctx, ticker)
	}
	return app.analyzer.Analyze(ctx, ticker)
}
