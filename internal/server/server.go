// Package server exposes the search engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hyperjump/humansearch/internal/config"
	"github.com/hyperjump/humansearch/internal/metrics"
	"github.com/hyperjump/humansearch/internal/search"
)

// maxBatchSize bounds the number of documents in one batch request.
const maxBatchSize = 1000

// Server is the HTTP server for the search API.
type Server struct {
	engine *search.Engine
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(engine *search.Engine, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine: engine,
		config: cfg,
		logger: logger,
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(metrics.Middleware())
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/candidates", s.handleCandidates)
		r.Get("/stats", s.handleStats)

		r.Post("/documents", s.handleIndexDocument)
		r.Post("/documents/batch", s.handleIndexBatch)
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}", s.handleGetDocument)

		r.Put("/users/{id}/profile", s.handlePutProfile)
		r.Get("/users/{id}/profile", s.handleGetProfile)
		r.Get("/users/{id}/history", s.handleHistory)
		r.Post("/users/{id}/clicks", s.handleClick)
	})
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	metrics.Register()
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}
