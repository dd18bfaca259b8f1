// Package server exposes a read-only HTTP view of a running editor:
// the current snapshot as JSON, the document as DOT, health, and
// Prometheus metrics. It never mutates the document; all editing stays
// with the interactive front end.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skeinlab/skein/pkg/editor"
	"github.com/skeinlab/skein/pkg/export"
	"github.com/skeinlab/skein/pkg/observability"
)

// Source supplies the document views the server publishes. *editor.Editor
// satisfies it.
type Source interface {
	State() editor.State
	Snapshot() editor.Snapshot
}

// Server serves snapshots of one editor instance over HTTP.
type Server struct {
	addr   string
	logger *log.Logger

	mu  sync.Mutex
	src Source
}

// New returns a server publishing the given source on addr.
func New(addr string, src Source, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{addr: addr, src: src, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/snapshot", s.handleSnapshot)
	r.Get("/v1/dot", s.handleDOT)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("snapshot server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("snapshot server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.src.Snapshot()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Error("encode snapshot", "err", err)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	detailed := r.URL.Query().Get("detailed") == "true"

	s.mu.Lock()
	state := s.src.State()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(export.ToDOT(state, export.Options{Detailed: detailed})))
}

// observe reports every request to the registered server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.Server().OnRequest(r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
