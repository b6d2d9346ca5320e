package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/userhub/internal/store"
)

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// writeError writes the standard error body: {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFieldErrors writes a validation failure: {"errors": {field: message}}.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
}

// writeStoreError maps store failures to responses. Sentinel errors become
// their client-facing statuses; anything else is a 500 with a generic
// message, the detail is logged but never exposed.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already registered.")
	default:
		log.Error().Err(err).Msg("Storage operation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// decodeJSON decodes a request body, rejecting unknown shapes early.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
