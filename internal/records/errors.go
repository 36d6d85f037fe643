package records

import (
	"errors"
	"net/http"
)

// Domain errors for record operations.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrNoFields     = errors.New("no fields to update")
	ErrInvalidInput = errors.New("invalid request body")
	ErrEmptyBatch   = errors.New("batch contains no records")
)

// MapHTTPStatus maps record domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoFields) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrEmptyBatch) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
