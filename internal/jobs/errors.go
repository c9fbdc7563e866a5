package jobs

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/screener/pkg/validation"
)

// Domain errors for job operations.
var (
	ErrNotFound   = errors.New("job not found")
	ErrDuplicate  = errors.New("job already exists")
	ErrInvalidJob = errors.New("invalid job")
)

// MapHTTPStatus maps job domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidJob) || errors.Is(err, validation.ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
