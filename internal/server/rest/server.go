// Package rest exposes the site API over HTTP/JSON: account endpoints behind
// a session cookie, admin endpoints behind a role check, the public reviews
// and callbacks endpoints, health and Prometheus metrics.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Options holds the HTTP-facing settings.
type Options struct {
	CookieSecure bool
	StaticDir    string
}

type HTTPServer struct {
	address   string
	accounts  *services.AccountService
	reviews   *services.ReviewService
	callbacks *services.CallbackService
	metrics   *Metrics
	logger    logging.Logger
	opts      Options
}

func NewHTTPServer(a string, l logging.Logger, as *services.AccountService, rs *services.ReviewService,
	cs *services.CallbackService, m *Metrics, opts Options) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		accounts:  as,
		reviews:   rs,
		callbacks: cs,
		metrics:   m,
		opts:      opts,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
