package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tickerlens/backend/pkg/config"
	"github.com/tickerlens/backend/pkg/logger"
)

// Server wraps the HTTP server serving the analysis API.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	port       string
	env        string
}

// New creates the API server. The write timeout is sized for a cold
// analysis request, which fans out a dozen provider calls before the
// first response byte.
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: log,
		port:   cfg.Port,
		env:    cfg.Env,
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"port": s.port,
		"env":  s.env,
	}).Info("Starting API server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
