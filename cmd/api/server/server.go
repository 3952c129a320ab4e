package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"user-table-service/internal/config"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance serving handler
func New(cfg *config.Config, l *zap.Logger, handler http.Handler) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupGinServer(handler, httpAddress(cfg), l),
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down HTTP server...")
	return s.HTTP.Shutdown(ctx)
}

// httpAddress returns the HTTP server address
func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
