package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"samvidhan/internal/answer"
	"samvidhan/internal/handlers"
	"samvidhan/internal/handlers/api"
	"samvidhan/internal/middleware"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Answers     *answer.Service
	Page        handlers.PageData
	Gatherer    prometheus.Gatherer
	ReadyChecks map[string]handlers.ReadyFunc
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	// Initialize handlers
	chatHandler := handlers.NewChatHandler(deps.Answers, s.Cfg, deps.Page)
	askHandler := api.NewAskHandler(deps.Answers)
	probeHandler := handlers.NewProbeHandler(deps.ReadyChecks)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	if deps.Gatherer != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Chat page
	s.App.Get("/", middleware.LoadHistory, chatHandler.Index)
	s.App.Post("/ask", middleware.LoadHistory, chatHandler.Ask)

	// JSON API
	s.App.Post("/api/ask", middleware.LoadHistory, askHandler.Ask)
	s.App.Get("/api/history", middleware.LoadHistory, askHandler.History)
}
