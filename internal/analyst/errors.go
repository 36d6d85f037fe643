package analyst

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyQuery       = errors.New("query must not be empty")
	ErrAgentUnavailable = errors.New("analyst agent unavailable")
)

// MapHTTPStatus translates analyst errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, ErrAgentUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
