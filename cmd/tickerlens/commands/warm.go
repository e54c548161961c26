package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerlens/backend/internal/scheduler/jobs"
)

// warmCmd represents the warm command
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Warm the analysis cache for the watchlist",
	Long: `Refreshes the cached analysis for every ticker in WATCHLIST_TICKERS.

Runs the same job the in-process scheduler runs on its cron schedule,
once, immediately.

Example:
  go run ./cmd/tickerlens warm`,
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)
}

func runWarm(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	job := jobs.NewWarmCacheJob(app.analyzer, app.cfg, app.log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := job.Run(ctx); err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}

	return nil
}
