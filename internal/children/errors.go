package children

import (
	"errors"
	"net/http"
)

// Domain errors for child record operations.
var (
	ErrNotFound  = errors.New("child not found")
	ErrDuplicate = errors.New("child already exists")
	ErrInvalid   = errors.New("invalid child record")
)

// MapHTTPStatus maps child domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
