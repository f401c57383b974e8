// Package server provides the HTTP API for Kue.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/community"
	"github.com/hyperjump/kue/internal/config"
	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/metrics"
	"github.com/hyperjump/kue/internal/search"
	"github.com/hyperjump/kue/internal/storage"
	"github.com/hyperjump/kue/internal/warmpath"
	"github.com/hyperjump/kue/pkg/utils"
)

// Services are the components the API is served from.
// Store and Metrics are optional.
type Services struct {
	Holder    *dataset.Holder
	Engine    *search.Engine
	Finder    *warmpath.Finder
	Community *community.Service
	Store     storage.Storage
	Metrics   *metrics.Collector
}

// Server is the HTTP server for the Kue API.
type Server struct {
	svc    Services
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(svc Services, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		svc:    svc,
		config: cfg,
		logger: utils.OrNop(logger),
	}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	if s.svc.Metrics != nil {
		r.Use(s.svc.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	if s.svc.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.svc.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/search/context", s.handleQueryContext)
		r.Get("/sources", s.handleSources)
		r.Post("/graph", s.handleGraph)
		r.Post("/intro-draft", s.handleIntroDraft)

		r.Route("/people/{id}", func(r chi.Router) {
			r.Get("/warm-paths", s.handleWarmPaths)
			r.Get("/community-signals", s.handlePersonSignals)
			r.Get("/community-path", s.handleCommunityPath)
			r.Post("/community-intro", s.handleCommunityIntro)
		})
		r.Get("/companies/{name}/community-signals", s.handleCompanySignals)

		r.Get("/circle", s.handleCircle)
		r.Get("/community/intro-requests", s.handleIntroRequests)
		r.Get("/status", s.handleStatus)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
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
