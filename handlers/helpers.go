package handlers

import (
	"clementus360/meeting-agent/types"
	"encoding/json"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	resp := types.ErrorResponse{
		Error:     message,
		Timestamp: timestamp(),
	}
	writeJSON(w, status, resp)

}

func timestamp() string {
	return types.Timestamp(time.Now())
}
