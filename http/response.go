package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"loan-qualifier/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves
// a half-written 200.
func writeJSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode response", nil)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("failed to write response", nil)
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, status int, message string) {
	writeJSON(w, log, status, errorResponse{Error: message})
}
