package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/inventory-sheets/internal/http/middleware"
)

const maxBodyBytes = 1048576 // one megabyte

// readBody returns the raw request body whatever its content type. The
// frontend posts JSON as text/plain.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func writeError(w http.ResponseWriter, msg string) {
	_ = writeJSON(w, http.StatusOK, middleware.ErrorResponse{Error: msg})
}
