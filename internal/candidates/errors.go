package candidates

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("candidate not found")
	ErrDuplicate      = errors.New("candidate already exists")
	ErrBatchNotFound  = errors.New("batch not found")
	ErrInvalidStatus  = errors.New("invalid candidate status")
	ErrTerminalStatus = errors.New("candidate status is final")
	ErrNotReviewable  = errors.New("candidate status is not reviewable")
	ErrNoAttachment   = errors.New("candidate has no cv attachment")
	ErrInvalidRequest = errors.New("invalid candidate request")
	ErrInvalidScore   = errors.New("score must be between 0 and 100")
)

// MapHTTPStatus maps candidate domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrBatchNotFound),
		errors.Is(err, ErrNoAttachment):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrTerminalStatus),
		errors.Is(err, ErrNotReviewable):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidScore):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
