/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and routes. This is the
  wiring layer between URLs and handlers.

MIDDLEWARE STACK:
  1. Logger:     request logging
  2. Recoverer:  panic recovery (500 instead of crash); any unexpected
                 processing failure surfaces as a retryable error
                 response, never a dead session
  3. RequestID:  unique ID per request for tracing
  4. CORS:       cross-origin requests for the dashboard frontend

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", h.ListTeams)
		r.Get("/employees", h.ListEmployees)

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.GetSchedule)
			r.Get("/export.csv", h.ExportScheduleCSV)
			r.Get("/export.pdf", h.ExportSchedulePDF)
		})

		r.Route("/reconciliation", func(r chi.Router) {
			r.Post("/", h.Reconcile)
			r.Post("/export.csv", h.ExportReconciliationCSV)
			r.Post("/export.xlsx", h.ExportReconciliationXLSX)
		})
	})

	return r
}
