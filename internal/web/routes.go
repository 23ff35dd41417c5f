package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kozaktomas/physiognomy/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	configHandler := handlers.NewConfigHandler(s.config, s.catalog)
	catalogHandler := handlers.NewCatalogHandler(s.catalog)
	analyzeHandler := handlers.NewAnalyzeHandler(s.catalog)
	visualizeHandler := handlers.NewVisualizeHandler(s.config)
	interpretHandler := handlers.NewInterpretHandler(s.catalog, s.interpreter)

	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/config", configHandler.Get)

		// Catalog
		r.Get("/catalog", catalogHandler.List)
		r.Get("/catalog/{category}", catalogHandler.Get)

		// Analysis
		r.Post("/analyze", analyzeHandler.Analyze)
		r.Post("/analyze/mesh", analyzeHandler.AnalyzeMesh)
		r.Post("/visualize", visualizeHandler.Visualize)
		r.Post("/interpret", interpretHandler.Interpret)
	})
}
