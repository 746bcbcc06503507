package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"

	"debt-planner/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string                     `json:"error"`
	Fields []*service.ValidationError `json:"fields,omitempty"`
}

// decodeJSON reads a JSON request body into v and answers the client itself
// when that fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "Content-Type must be application/json"})
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Printf("Error decoding request body: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// writeError maps service errors to status codes. Unexpected errors are
// reported to Sentry and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var single *service.ValidationError
	var multi *service.ValidationErrors

	switch {
	case errors.As(err, &multi):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: multi.Errors})
	case errors.As(err, &single):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: []*service.ValidationError{single}})
	case errors.Is(err, service.ErrDebtNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
