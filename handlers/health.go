package handlers

import (
	"clementus360/meeting-agent/config"
	"clementus360/meeting-agent/types"
	"net/http"
)

// AvailableEndpoints is advertised on every 404.
var AvailableEndpoints = []string{
	"GET /health",
	"POST /api/process-meeting",
	"GET /api/status/:executionId",
	"GET /api/characters",
	"GET /api/tasks",
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:    "healthy",
		Service:   config.ServiceName,
		Version:   config.Version,
		Timestamp: timestamp(),
	})
}

func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, types.ErrorResponse{
		Error:              "Endpoint not found",
		AvailableEndpoints: AvailableEndpoints,
		Timestamp:          timestamp(),
	})
}
