// Package server serves a loaded graph over HTTP: a self-contained
// interactive viewer page, a JSON API for the graph and its settled layout,
// static exports, and snapshot management.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/observability"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/pipeline"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/store"
)

// Server serves one graph document. The graph is loaded at startup and is
// immutable for the server's lifetime; layouts are computed on demand and
// cached by the pipeline runner.
type Server struct {
	graph  graph.Graph
	runner *pipeline.Runner
	opts   pipeline.Options
	snaps  store.Store
	logger *log.Logger
}

// Config assembles a server.
type Config struct {
	// Graph is the document to serve. Must validate.
	Graph graph.Graph

	// Runner settles and caches layouts. Required.
	Runner *pipeline.Runner

	// Options are the base pipeline options for layout and rendering.
	Options pipeline.Options

	// Snapshots enables the snapshot endpoints. Optional.
	Snapshots store.Store

	// Logger defaults to the standard logger.
	Logger *log.Logger
}

// New creates a server for a validated graph.
func New(cfg Config) (*Server, error) {
	if err := cfg.Graph.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Options.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		graph:  cfg.Graph,
		runner: cfg.Runner,
		opts:   cfg.Options,
		snaps:  cfg.Snapshots,
		logger: cfg.Logger,
	}, nil
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleViewer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/layout", s.handleLayout)

		if s.snaps != nil {
			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", s.handleListSnapshots)
				r.Post("/", s.handleSaveSnapshot)
				r.Get("/{name}", s.handleGetSnapshot)
				r.Delete("/{name}", s.handleDeleteSnapshot)
			})
		}
	})

	r.Get("/export/dot", s.handleExportDOT)
	r.Get("/export/svg", s.handleExportSVG)
	r.Get("/export/png", s.handleExportPNG)

	return r
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// observe is the logging and hooks middleware.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration.Round(time.Millisecond))
	})
}
