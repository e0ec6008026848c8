// Package server exposes root decoding, polynomial reconstruction and
// evaluation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/klauspost/compress/gzhttp"

	"github.com/agbru/polyroots/internal/config"
	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/logging"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/service"
)

// Server wraps an http.Server with the application routes, the middleware
// chain and graceful shutdown.
type Server struct {
	factory        polynomial.AssemblerFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	cache          *solveCache
	cacheSize      int
}

// NewServer creates a Server for the assemblers of factory.
//
// Parameters:
//   - factory: The registry the solve and algorithms endpoints use.
//   - cfg: The application configuration (port, max roots).
//   - opts: Functional options (WithLogger, WithService, ...).
//
// Returns:
//   - *Server: The configured server, not yet listening.
func NewServer(factory polynomial.AssemblerFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		cacheSize:      DefaultCacheSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewPolynomialService(s.factory, s.cfg.MaxRoots).
			WithObservers(polynomial.NewMetricsObserver())
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}
	s.cache = newSolveCache(s.cacheSize)

	mux := http.NewServeMux()
	mux.HandleFunc("/solve", s.wrapWithMiddleware(s.handleSolve))
	mux.HandleFunc("/decode", s.wrapWithMiddleware(s.handleDecode))
	mux.HandleFunc("/evaluate", s.wrapWithMiddleware(s.handleEvaluate))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/algorithms", s.wrapWithMiddleware(s.handleAlgorithms))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      gzhttp.GzipHandler(mux),
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Handler returns the root handler, gzip and routes included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Security -> RateLimit -> Logging -> Metrics -> handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start listens on the configured port until SIGINT or SIGTERM, then
// drains in-flight requests within the shutdown timeout.
//
// Returns:
//   - error: A ServerError if listening or shutting down failed.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.Int("max_roots", s.cfg.MaxRoots),
			logging.Int("cache_size", s.cacheSize))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  POST /solve?k=<count>&algo=<strategy>")
		s.logger.Println("  GET  /decode?numeral=<digits>&base=<2-36>")
		s.logger.Println("  POST /evaluate")
		s.logger.Println("  GET  /health, /algorithms, /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Info("shutdown signal received, draining requests")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}
