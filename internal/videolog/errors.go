package videolog

import (
	"errors"
	"net/http"
)

// Domain errors for video log operations.
var (
	ErrNotFound = errors.New("video log entry not found")
	ErrInvalid  = errors.New("invalid video log entry")
)

// MapHTTPStatus maps video log domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
