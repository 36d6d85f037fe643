package uploads

import (
	"errors"
	"net/http"

	"github.com/procuregpt/procure/internal/extraction"
)

var (
	ErrNotFound            = errors.New("uploaded file not found")
	ErrDuplicate           = errors.New("uploaded file already exists")
	ErrInvalidFile         = errors.New("invalid upload request")
	ErrFileTooLarge        = errors.New("uploaded file exceeds size limit")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

// MapHTTPStatus translates upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrExtensionNotAllowed):
		return http.StatusUnsupportedMediaType
	default:
		return extraction.MapHTTPStatus(err)
	}
}
