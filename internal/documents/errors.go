package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	// ErrNotFound indicates no catalog record exists for the id.
	ErrNotFound = errors.New("document not found")

	// ErrContentMissing indicates a catalog record exists but the blob store
	// cannot produce content for it. This is a detected consistency
	// violation, never silently treated as empty content.
	ErrContentMissing = errors.New("document content missing")

	// ErrStorageUnavailable indicates the underlying store rejected the
	// operation, e.g. quota or permission failure.
	ErrStorageUnavailable = errors.New("document storage unavailable")

	// ErrDecodeFailure indicates a blob is present but not a valid PDF.
	// Raised only during reconciliation and never propagated to List callers.
	ErrDecodeFailure = errors.New("document decode failure")

	// ErrFileTooLarge indicates the upload exceeds the configured maximum.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrInvalidFile indicates the upload is missing or not a PDF.
	ErrInvalidFile = errors.New("invalid file")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrContentMissing) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
