package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogward/blogward/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// HTTPServer wraps the net/http server with context-driven shutdown.
type HTTPServer struct {
	server *http.Server
	log    logging.Logger
}

func NewHTTPServer(addr string, handler http.Handler, log logging.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{Addr: addr, Handler: handler},
		log:    log,
	}
}

// Run serves until the context is cancelled, then drains in-flight
// requests within shutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info(ctx, "http server starting", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.log.Info(ctx, "http server stopped")
	return nil
}
