package handlers

import (
	"clementus360/meeting-agent/config"
	"clementus360/meeting-agent/engine"
	"clementus360/meeting-agent/pipeline"
	"clementus360/meeting-agent/types"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

const missingFieldsMessage = "Missing required fields: audioData, meetingId, and participantId are required"

// MeetingExecutor runs meetings and reports on past runs. *engine.Engine
// satisfies it.
type MeetingExecutor interface {
	Execute(ctx context.Context, req types.MeetingRequest) (string, types.MeetingResult, error)
	Status(id string) (engine.Execution, bool)
}

type Handler struct {
	executor MeetingExecutor
}

func New(executor MeetingExecutor) *Handler {
	return &Handler{executor: executor}
}

func (h *Handler) ProcessMeetingHandler(w http.ResponseWriter, r *http.Request) {
	var req types.MeetingRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		config.Logger.Error("Failed to decode meeting JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := pipeline.ValidateRequest(req); err != nil {
		writeError(w, missingFieldsMessage, http.StatusBadRequest)
		return
	}

	config.Logger.Infof("Processing meeting %s for participant %s", req.MeetingID, req.ParticipantID)

	executionID, result, err := h.executor.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidRequest) {
			writeError(w, missingFieldsMessage, http.StatusBadRequest)
			return
		}
		config.Logger.Error("Error processing meeting:", err)
		writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Failed to process meeting",
			Message:   err.Error(),
			Timestamp: timestamp(),
		})
		return
	}

	config.Logger.Infof("Meeting %s processed successfully", req.MeetingID)

	writeJSON(w, http.StatusOK, types.ProcessMeetingResponse{
		Success:     true,
		ExecutionID: executionID,
		Data:        result,
		Timestamp:   timestamp(),
	})
}

func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	executionID := r.PathValue("executionId")

	exec, ok := h.executor.Status(executionID)
	if !ok {
		writeError(w, "Execution not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, types.StatusResponse{
		ExecutionID: exec.ID,
		Status:      string(exec.Status),
		Stage:       exec.Stage,
		Error:       exec.Error,
		Timestamp:   timestamp(),
	})
}
