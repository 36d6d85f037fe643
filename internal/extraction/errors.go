package extraction

import (
	"errors"
	"net/http"
)

var (
	ErrUnsupportedFormat = errors.New("extraction requires a pdf document")
	ErrRenderFailed      = errors.New("page rendering failed")
	ErrVerifyFailed      = errors.New("document verification failed")
	ErrExtractFailed     = errors.New("line item extraction failed")
)

// MapHTTPStatus translates extraction errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrRenderFailed),
		errors.Is(err, ErrVerifyFailed),
		errors.Is(err, ErrExtractFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
