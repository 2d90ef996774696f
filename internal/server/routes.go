package server

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordbubble/internal/db"
	"wordbubble/internal/handlers"
	"wordbubble/internal/handlers/api"
	"wordbubble/internal/middleware"
)

// Deps are the collaborators routes are wired to.
type Deps struct {
	// Analyzer scores topics. Required.
	Analyzer handlers.Analyzer
	// DB stores analysis history. Nil disables history endpoints.
	DB *db.DB
	// RateLimitStorage shares limiter counters between instances. Nil keeps
	// them in memory.
	RateLimitStorage fiber.Storage
	// RetrieverBaseURL is reported by the health endpoint.
	RetrieverBaseURL string
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	// Nil pointers must not become non-nil interfaces
	var (
		pinger       handlers.Pinger
		apiPinger    api.Pinger
		recent       handlers.RecentLister
		historyStore api.HistoryStore
	)
	if deps.DB != nil {
		pinger, apiPinger, recent, historyStore = deps.DB, deps.DB, deps.DB, deps.DB
	} else {
		log.Println("DATABASE_URL not set, analysis history is disabled")
	}

	// Initialize handlers
	indexHandler := handlers.NewIndexHandler(s.Cfg, recent)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, nil)
	probeHandler := handlers.NewProbeHandler(pinger)
	healthHandler := api.NewHealthHandler(apiPinger, deps.RetrieverBaseURL, s.Cfg.Version)
	historyHandler := api.NewHistoryHandler(historyStore)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Max:     s.Cfg.RateLimitMax,
		Window:  s.Cfg.RateLimitWindow,
		Storage: deps.RateLimitStorage,
	})

	// Probe routes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Frontend routes
	s.App.Get("/", indexHandler.Index)
	s.App.Post("/analyze", rateLimiter, analyzeHandler.Analyze)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/health", healthHandler.Health)
	apiGroup.Get("/analyses", historyHandler.List)
	apiGroup.Get("/analyses/:id", historyHandler.Get)
}
