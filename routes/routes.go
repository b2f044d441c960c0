package routes

import (
	"clementus360/meeting-agent/handlers"
	"net/http"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /health", h.HealthHandler)
	RegisterMeetingRoutes(mux, h)
	RegisterCatalogRoutes(mux, h)

	// Everything else
	mux.HandleFunc("/", h.NotFoundHandler)
}
