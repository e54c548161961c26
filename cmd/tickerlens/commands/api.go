package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerlens/backend/internal/api"
	"github.com/tickerlens/backend/internal/api/handlers"
	"github.com/tickerlens/backend/internal/scheduler"
	"github.com/tickerlens/backend/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the TickerLens REST API server.

Endpoints:
  GET    /health                      - Health check
  GET    /api/analysis/{ticker}       - Full analysis for a ticker
  DELETE /api/analysis/{ticker}/cache - Drop the cached entry and rebuild
  GET    /api/search?q=...            - Ticker search

Example:
  go run ./cmd/tickerlens api
  go run ./cmd/tickerlens api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TickerLens API Server ===")

	// 1. Wire the pipeline
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	// 2. Create handler and router
	analysisHandler := handlers.NewAnalysisHandler(app.analyzer, app.log)
	router := api.NewRouter(analysisHandler, app.log)

	// 3. Create server
	server := api.New(app.cfg, app.log, router)

	// 4. Start the watchlist cache warmer if enabled
	var sched *scheduler.Scheduler
	if app.cfg.Watchlist.Enabled {
		sched = scheduler.New(app.log)
		warmJob := jobs.NewWarmCacheJob(app.analyzer, app.cfg, app.log)
		if err := sched.AddJob(warmJob); err != nil {
			return fmt.Errorf("register warm job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 5. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			app.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\nServer running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	app.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.log.Info("Server stopped")
	return nil
}
