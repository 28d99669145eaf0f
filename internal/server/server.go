// Package server provides the HTTP server and routing for LottoLab.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/database"
	drawshandlers "github.com/aristath/lottolab/internal/modules/draws/handlers"
	generatorhandlers "github.com/aristath/lottolab/internal/modules/generator/handlers"
	statshandlers "github.com/aristath/lottolab/internal/modules/stats/handlers"
)

// Config holds server configuration.
type Config struct {
	Log               zerolog.Logger
	Port              int
	DevMode           bool
	HistoryDB         *database.DB
	CombinationsDB    *database.DB
	CacheDB           *database.DB
	GeneratorHandlers *generatorhandlers.Handler
	DrawsHandlers     *drawshandlers.Handler
	StatsHandlers     *statshandlers.Handler
	SystemHandlers    *SystemHandlers
}

// Server is the HTTP server exposing the dashboard API.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
}

// New creates a new HTTP server with all routes registered.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// The dashboard frontend is served separately in dev mode; allow it.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/variants", s.cfg.GeneratorHandlers.HandleListVariants)
		r.Get("/strategies", s.cfg.GeneratorHandlers.HandleListStrategies)
		r.Post("/generate", s.cfg.GeneratorHandlers.HandleGenerate)

		r.Get("/draws/{variant}", s.cfg.DrawsHandlers.HandleGetHistory)
		r.Post("/draws/{variant}", s.cfg.DrawsHandlers.HandleAddDraw)
		r.Get("/combinations", s.cfg.DrawsHandlers.HandleListCombinations)

		r.Get("/stats/{variant}", s.cfg.StatsHandlers.HandleGetStats)
		r.Post("/stats/{variant}/refresh", s.cfg.StatsHandlers.HandleRefreshStats)

		r.Get("/system/health", s.cfg.SystemHandlers.HandleHealth)
		r.Get("/system/version", s.cfg.SystemHandlers.HandleVersion)
	})
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router, mainly for handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}
