package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server and the locale watcher until ctx is done or a
// shutdown signal arrives, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := waitForShutdown(ctx)
	defer stop()

	go func() {
		if err := s.Bundle.Watch(ctx); err != nil {
			s.logger.Error("Locale watcher stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.Cfg.GetServerAddr(), "api", s.Cfg.GetAPIBaseURL())
		if err := s.E.Start(s.Cfg.GetServerAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.E.Shutdown(shutdownCtx)
}
