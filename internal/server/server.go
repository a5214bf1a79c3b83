// Package server exposes the layout framework over HTTP: technology
// introspection (layers, stack, cross-sections), cell building, and
// route computation. It is a thin JSON facade over the pkg packages,
// meant for PDK browsers and layout UIs.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/tech"
	"github.com/waveforge/waveforge/pkg/xsection"
)

// Config assembles the server's dependencies.
type Config struct {
	Tech   *tech.Tech
	XS     *xsection.Registry
	Cells  *layout.Registry
	Logger *log.Logger

	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// Server serves the JSON API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds the server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Tech == nil || cfg.XS == nil || cfg.Cells == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "server needs tech, cross-section registry, and cell registry")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/layers", s.handleLayers)
		r.Get("/layerstack", s.handleLayerStack)
		r.Get("/cross-sections", s.handleCrossSections)
		r.Get("/cells", s.handleCells)
		r.Post("/cells/{name}", s.handleBuildCell)
		r.Post("/route", s.handleRoute)
	})
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// logRequests logs method, path, status, and duration per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// writeJSON encodes v with an indent for human inspection.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError maps domain error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeNotFound),
		errors.Is(err, errors.ErrCodeCellNotFound),
		errors.Is(err, errors.ErrCodePortNotFound),
		errors.Is(err, errors.ErrCodeRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidCrossSection),
		errors.Is(err, errors.ErrCodeInvalidPort),
		errors.Is(err, errors.ErrCodeRouteImpossible),
		errors.Is(err, errors.ErrCodeSeparationViolation):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
