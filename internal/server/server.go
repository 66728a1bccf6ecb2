package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"

	"task-logger/internal/api"
	"task-logger/internal/config"
	"task-logger/internal/logging"
	"task-logger/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP collaborator in front of the business API
type Server struct {
	cfg    *config.Config
	api    api.BusinessAPI
	health *monitoring.HealthChecker
	router *gin.Engine
	http   *http.Server
}

// New builds the router around the given health checks
func New(cfg *config.Config, businessAPI api.BusinessAPI, checks map[string]monitoring.CheckFunc) *Server {
	s := &Server{
		cfg:    cfg,
		api:    businessAPI,
		health: monitoring.NewHealthChecker(checks),
	}
	s.router = s.setupRoutes()
	s.http = &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	logging.Infof("server listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Infof("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
