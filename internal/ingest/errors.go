package ingest

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/screener/pkg/validation"
)

var (
	ErrNoSubmissions  = errors.New("no candidates submitted")
	ErrBatchNotFound  = errors.New("batch not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrBatchArchived  = errors.New("batch is archived")
	ErrQueueFull      = errors.New("ingestion queue is full")
	ErrTaskNotFound   = errors.New("ingestion task not found")
	ErrInvalidRequest = errors.New("invalid ingestion request")
	ErrStopped        = errors.New("ingestion dispatcher stopped")
)

// MapHTTPStatus maps ingestion errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBatchNotFound),
		errors.Is(err, ErrJobNotFound),
		errors.Is(err, ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBatchArchived):
		return http.StatusConflict
	case errors.Is(err, ErrQueueFull),
		errors.Is(err, ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNoSubmissions),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
