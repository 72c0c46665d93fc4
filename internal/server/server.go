// Package server exposes the EUR-Lex aggregator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"eurlexscraper/pkg/config"
	"eurlexscraper/pkg/eurlex"
	"eurlexscraper/pkg/logger"
	"eurlexscraper/pkg/scraper"
)

// Scraper runs one complete aggregation
type Scraper interface {
	ScrapeAll(ctx context.Context, params eurlex.SearchParams) *scraper.Outcome
}

// Server holds everything a request handler needs. It replaces any
// package-level state so several servers can run in one process.
type Server struct {
	cfg     *config.Config
	scraper Scraper
	logger  logger.Logger
	static  fs.FS
	handler http.Handler
}

// New builds the routes and middleware for cfg
func New(cfg *config.Config, s Scraper, log logger.Logger) *Server {
	if log == nil {
		log = logger.GetLogger()
	}
	log = log.WithField("component", "server")

	srv := &Server{
		cfg:     cfg,
		scraper: s,
		logger:  log,
		static:  staticFS(cfg.Server.StaticDir, log),
	}
	srv.handler = srv.routes()
	return srv
}

// Handler returns the root handler including middleware
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address derived from the configured port
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.Server.Port)
}

// Run listens on the configured port and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	logger.LogComponentStart(s.logger, "http", map[string]interface{}{
		"addr":       ln.Addr().String(),
		"static_dir": s.cfg.Server.StaticDir,
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.LogComponentStop(s.logger, "http", "shutdown timed out")
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errCh

	logger.LogComponentStop(s.logger, "http", "context cancelled")
	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /scrape-all-eurlex", s.handleScrapeAll)
	// GET patterns also match HEAD
	mux.HandleFunc("HEAD /scrape-all-eurlex", methodNotAllowed(http.MethodGet, http.MethodOptions))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /{$}", s.servePage("index.html"))
	mux.HandleFunc("GET /demo", s.servePage("demo.html"))
	mux.HandleFunc("GET /display-results", s.servePage("results.html"))
	mux.Handle("GET /", http.FileServerFS(s.static))

	return requestID(logRequests(s.logger, cors(mux)))
}
