package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/repository"
)

// envelope is the wire format every endpoint speaks:
// {success, message?, data?} plus endpoint-specific top-level fields.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

// respondData wraps a payload in the success envelope.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{"success": true, "data": data})
}

// respondError wraps a message in the failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// respondRepoError maps repository errors to 404/500.
func respondRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("internal error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody parses a JSON request body, replying 400 on malformed input.
// Returns false when the request has already been answered.
func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
