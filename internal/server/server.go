// Package server exposes the template pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	docfill "github.com/alnah/go-docfill"
	"github.com/alnah/go-docfill/internal/templates"
)

// Defaults.
const (
	DefaultMaxUploadBytes = 20 << 20
	DefaultRequestTimeout = 120 * time.Second
)

// Renderer is the part of *docfill.Pipeline the handlers need.
type Renderer interface {
	ListTokens(ctx context.Context, path string) ([]string, error)
	Render(ctx context.Context, path string, values map[string]string, target docfill.Format) (*docfill.Result, error)
}

// Config holds the server limits.
type Config struct {
	MaxUploadBytes int64         // multipart body limit; default 20 MiB
	UploadDir      string        // where uploads are staged; default os.TempDir()
	RequestTimeout time.Duration // per request; default 120s
}

// Server serves the template API.
type Server struct {
	renderer Renderer
	store    *templates.Store
	cfg      Config
	log      zerolog.Logger
}

// New returns a Server. store may be nil, in which case the template
// listing and download endpoints answer 404.
func New(renderer Renderer, store *templates.Store, cfg Config, log zerolog.Logger) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = os.TempDir()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &Server{renderer: renderer, store: store, cfg: cfg, log: log}
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "docfill"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.listTemplates)
		r.Get("/template/{name}", s.downloadTemplate)
		r.Post("/upload", s.upload)
		r.Post("/generate", s.generate)
	})

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
