package web

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/mediacatalog/internal/scanner"
	"github.com/vbonduro/mediacatalog/internal/service"
)

// Services bundles what the HTTP surface calls into.
type Services struct {
	Catalog   *service.CatalogService
	Scanner   *scanner.Scanner
	Uploads   *service.UploadPipeline
	Deletions *service.DeletionPipeline
	Hero      *service.HeroAggregator
}

type Options struct {
	MediaRoot          string
	MaxMultipartMemory int64
	AllowedOrigins     []string
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	services Services
	db       pinger
	opts     Options
	validate *validator.Validate
	mux      *http.ServeMux
	handler  http.Handler
	logger   *slog.Logger
}

func NewServer(services Services, db pinger, opts Options, logger *slog.Logger) *Server {
	if opts.MaxMultipartMemory <= 0 {
		opts.MaxMultipartMemory = 32 << 20
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		services: services,
		db:       db,
		opts:     opts,
		validate: newValidator(),
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.registerRoutes()

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	})
	s.handler = requestLogger(s.logger, securityHeaders(corsHandler(s.mux)))
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/categories", s.handleListCategories)
	s.mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	s.mux.HandleFunc("DELETE /api/categories", s.handleDeleteAllCategories)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	s.mux.HandleFunc("GET /api/images", s.handleListImages)
	s.mux.HandleFunc("POST /api/images", s.handleCreateImage)
	s.mux.HandleFunc("PUT /api/images/{id}", s.handleUpdateImage)
	s.mux.HandleFunc("DELETE /api/images/{id}", s.handleDeleteImage)

	s.mux.HandleFunc("GET /api/gallery", s.handleScanGallery)
	s.mux.HandleFunc("GET /api/gallery/categories", s.handleScanCategories)
	s.mux.HandleFunc("POST /api/gallery/categories", s.handleCreateGalleryCategory)

	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("POST /api/media/delete", s.handleDeleteMedia)

	s.mux.HandleFunc("GET /api/hero", s.handleGetHero)
	s.mux.HandleFunc("POST /api/hero", s.handleSaveHero)
	s.mux.HandleFunc("DELETE /api/hero/{id}", s.handleDeleteHero)

	media := noDirListing(http.FileServer(http.Dir(s.opts.MediaRoot)))
	for _, section := range service.SectionNames() {
		s.mux.Handle("GET /"+section+"/", media)
	}
}

// noDirListing answers 404 for directory paths so only files are served.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Error: "database unavailable"}, s.logger)
		return
	}
	if _, err := os.Stat(filepath.Clean(s.opts.MediaRoot)); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Error: "media root unavailable"}, s.logger)
		return
	}
	s.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
