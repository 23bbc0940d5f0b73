package pipeline

import (
	"errors"
	"net/http"
)

// Domain errors for detection ingest.
var (
	ErrInvalidTitle     = errors.New("title rejected by content filter")
	ErrInvalidDetection = errors.New("invalid detection")
)

// MapHTTPStatus maps pipeline errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidTitle) || errors.Is(err, ErrInvalidDetection) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
