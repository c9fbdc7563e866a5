package batches

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/screener/pkg/validation"
)

// Domain errors for batch operations.
var (
	ErrNotFound     = errors.New("batch not found")
	ErrDuplicate    = errors.New("batch already exists")
	ErrJobNotFound  = errors.New("job not found")
	ErrArchived     = errors.New("batch is archived")
	ErrInvalidBatch = errors.New("invalid batch")
)

// MapHTTPStatus maps batch domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrJobNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrArchived) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidBatch) || errors.Is(err, validation.ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
