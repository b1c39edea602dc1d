// Package server exposes a store.Store over HTTP at /api/tables.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Makepad-fr/checklist/internal/logging"
	"github.com/Makepad-fr/checklist/internal/store"
)

// TablesPath is the read-all/write-all endpoint.
const TablesPath = "/api/tables"

// DefaultMaxBody caps POST bodies when Config.MaxBody is unset.
const DefaultMaxBody = 8 << 20

// Config holds what the server needs to run.
type Config struct {
	Store   store.Store
	Addr    string
	MaxBody int64
	Logger  *slog.Logger
}

type Server struct {
	store   store.Store
	addr    string
	maxBody int64
	logger  *slog.Logger
}

func New(cfg Config) *Server {
	s := &Server{
		store:   cfg.Store,
		addr:    cfg.Addr,
		maxBody: cfg.MaxBody,
		logger:  cfg.Logger,
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Handler builds the routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		cors,
	)

	r.Get("/healthz", s.health)
	r.Get(TablesPath, s.getTables)
	r.Post(TablesPath, s.postTables)
	r.Options(TablesPath, s.options)
	return r
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("store service listening", "addr", ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down store service")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
