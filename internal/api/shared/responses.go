// Package shared provides response helpers used by every API handler.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse defines the standard error response structure. Details
// carries field-level validation messages when present.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and
// data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message, tagging it with the request ID for log correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, details ...string) {
	resp := ErrorResponse{
		Error:   message,
		Details: details,
		TraceID: middleware.GetReqID(r.Context()),
	}

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", resp.TraceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, resp)
}
