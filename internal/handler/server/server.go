package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"music_hub/infrastructure/config"
	"music_hub/infrastructure/metrics"
	"music_hub/internal/core/ports"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	httpServer *http.Server
	logger     ports.LoggerPort
}

// NewServer mounts the API at / and the Prometheus handler at the configured metrics path.
func NewServer(cfg *config.Config, api *API, logger ports.LoggerPort) *Server {
	mux := http.NewServeMux()
	mux.Handle("/", api.Handler())
	if cfg.MetricsPath != "" {
		mux.Handle(cfg.MetricsPath, metrics.Handler())
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve blocks until ctx ends, then gives in-flight requests up to five seconds to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)

	go func() {
		s.logger.Info("Starting music hub server on " + ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("music hub server failed: %w", err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down music hub server: " + ctx.Err().Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down music hub server: %w", err)
	}

	s.logger.Info("Music hub server stopped.")
	return nil
}
