package routes

import (
	"clementus360/meeting-agent/handlers"
	"net/http"
)

// RegisterCatalogRoutes registers the character and task listings
func RegisterCatalogRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /api/characters", h.GetCharactersHandler)
	mux.HandleFunc("GET /api/tasks", h.GetTasksHandler)
}
