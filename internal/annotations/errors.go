package annotations

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the referenced annotation does not exist.
	ErrNotFound = errors.New("annotation not found")

	// ErrInvalidVariant indicates an unknown annotation kind.
	ErrInvalidVariant = errors.New("invalid annotation type")

	// ErrVariantMismatch indicates a patch targeting a different variant
	// than the annotation it was applied to.
	ErrVariantMismatch = errors.New("patch does not apply to annotation type")

	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("invalid page number")
)

// MapHTTPStatus converts annotation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidVariant),
		errors.Is(err, ErrVariantMismatch),
		errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
