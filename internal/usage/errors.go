package usage

import (
	"errors"
	"net/http"
)

// Domain errors for usage operations.
var (
	ErrPermissionDenied = errors.New("usage access not granted on device")
	ErrInvalidReport    = errors.New("invalid usage report")
	ErrNotFound         = errors.New("usage report not found")
)

// MapHTTPStatus maps usage domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrPermissionDenied) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidReport) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
