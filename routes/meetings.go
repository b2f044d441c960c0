package routes

import (
	"clementus360/meeting-agent/handlers"
	"net/http"
)

// RegisterMeetingRoutes registers the pipeline entry point and run status
func RegisterMeetingRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /api/process-meeting", h.ProcessMeetingHandler)
	mux.HandleFunc("GET /api/status/{executionId}", h.StatusHandler)
}
