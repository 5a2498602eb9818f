package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/onlinebank/internal/adapter/http/handler"
	"github.com/iho/onlinebank/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger        zerolog.Logger
	Gatherer      prometheus.Gatherer
	HealthHandler *handler.HealthHandler
}

// NewRouter creates the operational router: health probes and metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	health := cfg.HealthHandler
	if health == nil {
		health = handler.NewHealthHandler(nil)
	}
	r.Get("/health", health.Liveness)
	r.Get("/ready", health.Readiness)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

// Server runs a router in the background until Shutdown.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
	errc   chan error
}

// Start listens on addr and serves handler in a new goroutine.
func Start(addr string, h http.Handler, logger zerolog.Logger) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		errc:   make(chan error, 1),
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("starting metrics server")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
			s.errc <- err
		}
		close(s.errc)
	}()

	return s
}

// Shutdown stops the server, waiting at most timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("metrics server stopped")
	return <-s.errc
}
