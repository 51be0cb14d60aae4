// Package server exposes the export engine over HTTP.
//
// # Routes
//
//	GET  /healthz                          liveness probe
//	GET  /v1/formats                       format registry
//	POST /v1/export/{format}               export the diagram in the request body
//	GET  /v1/diagrams/{id}/export/{format} export a stored snapshot
//
// Export responses carry the artifact bytes with its media type and a
// Content-Disposition naming the generated file. Failures are JSON bodies
// of the form {"code": ..., "message": ..., "details": ...}.
package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archexport/pkg/export"
	"github.com/matzehuels/archexport/pkg/source"
)

const (
	// MaxBodyBytes bounds export request bodies.
	MaxBodyBytes = 8 << 20

	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// Config holds the server dependencies.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Logger receives request and lifecycle logs. Nil discards them.
	Logger *log.Logger

	// Defaults are the options each request's options are decoded onto.
	Defaults export.Options

	// Provider serves stored snapshots. Nil disables the snapshot route.
	Provider source.Provider

	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Server is the HTTP front end of the exporter.
type Server struct {
	addr            string
	logger          *log.Logger
	exporter        *export.Exporter
	defaults        export.Options
	provider        source.Provider
	shutdownTimeout time.Duration
	router          chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		addr:            cfg.Addr,
		logger:          logger,
		exporter:        export.New(logger),
		defaults:        cfg.Defaults,
		provider:        cfg.Provider,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/export/{format}", s.handleExport)
		if s.provider != nil {
			r.Get("/diagrams/{id}/export/{format}", s.handleSnapshotExport)
		}
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is [Server.Serve] on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.router,
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info("starting server", "addr", ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
