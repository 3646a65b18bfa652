// Package handlers implements the JSON response conventions shared by every
// HTTP handler in the service: a single error envelope, buffered encoding,
// and status mapping for the domain error taxonomies.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// StatusMapper translates a domain error into the HTTP status code its
// package assigns it. Each domain package exports one.
type StatusMapper func(error) int

type errorEnvelope struct {
	Error string `json:"error"`
}

// RespondJSON writes data as an application/json response. The payload is
// encoded before any header is written, so an encoding failure surfaces as
// a 500 rather than a truncated 2xx body.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		http.Error(w, `{"error":"response encoding failure"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// RespondError logs err and writes the error envelope. Client errors log at
// warn, server errors at error, so operator alerts track 5xx only.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	RespondJSON(w, status, errorEnvelope{Error: err.Error()})
}

// RespondDomainError resolves the status through the domain's mapper and
// writes the error envelope.
func RespondDomainError(w http.ResponseWriter, logger *slog.Logger, mapStatus StatusMapper, err error) {
	RespondError(w, logger, mapStatus(err), err)
}
