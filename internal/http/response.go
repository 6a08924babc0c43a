package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/store"
)

// errorResponse is the JSON body for every non-2xx answer. Applied is
// set when the mutation took effect in memory but could not be
// persisted, so clients can warn instead of retrying.
type errorResponse struct {
	Error   string `json:"error"`
	Applied bool   `json:"applied,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writeError maps domain errors onto status codes: validation and
// duplicate ids are 422, unknown ids 404, persistence failures 500
// with the applied flag, anything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *store.PersistenceError
	switch {
	case core.IsValidation(err), errors.Is(err, store.ErrDuplicateID):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &pe):
		slog.ErrorContext(r.Context(), "Persistence failure",
			applog.FieldRequestID, trace.GetRequestID(r.Context()),
			applog.FieldOperation, pe.Op,
			applog.FieldError, pe.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Applied: true})
	default:
		slog.ErrorContext(r.Context(), "Unhandled error",
			applog.FieldRequestID, trace.GetRequestID(r.Context()),
			applog.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
