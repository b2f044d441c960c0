package handlers

import (
	"clementus360/meeting-agent/types"
	"net/http"
)

// Personas and tasks live only as long as the run that produced them, so the
// listings are always empty.

func (h *Handler) GetCharactersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.GetCharactersResponse{
		Characters: []types.Persona{},
		Message:    "No characters stored yet. Characters are created per meeting.",
		Timestamp:  timestamp(),
	})
}

func (h *Handler) GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.GetTasksResponse{
		Tasks:     []types.Task{},
		Message:   "No tasks stored yet. Tasks are processed per meeting.",
		Timestamp: timestamp(),
	})
}
