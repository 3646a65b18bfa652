package assist

import (
	"errors"
	"net/http"
)

var (
	// ErrDisabled indicates no upstream API key is configured.
	ErrDisabled = errors.New("assistant disabled: no API key configured")

	// ErrUpstream indicates the chat-completions endpoint failed.
	ErrUpstream = errors.New("assistant upstream error")

	// ErrEmptyResponse indicates the endpoint returned no choices.
	ErrEmptyResponse = errors.New("assistant returned no response")
)

// MapHTTPStatus converts assistant errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
