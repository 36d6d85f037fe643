package historical

import (
	"errors"
	"net/http"
)

// Domain errors for archive operations.
var (
	ErrNotFound     = errors.New("no archive entries for sku")
	ErrInvalidInput = errors.New("invalid request")
)

// MapHTTPStatus maps archive domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
