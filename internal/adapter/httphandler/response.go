package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, msg string) {
	writeJSON(w, log, status, ErrorResponse{Error: msg})
}

// decodeJSON writes 400 and returns false on a malformed body.
func decodeJSON(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeError(w, log, http.StatusBadRequest, "invalid JSON data")
		return false
	}
	return true
}
