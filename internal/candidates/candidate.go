// Package candidates stores screened candidates and owns their review status.
// Candidates are created by ingestion and afterwards only change status.
package candidates

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a candidate's position in the screening workflow.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	// StatusDone is accepted by readers for compatibility but never assigned.
	StatusDone Status = "done"
)

// Terminal reports whether a candidate in this status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Reviewable reports whether a reviewer may still decide on a candidate in this status.
func (s Status) Reviewable() bool {
	return s == StatusProcessing || s == StatusFailed
}

// CanTransition reports whether a reviewer may move a candidate from one status to another.
func CanTransition(from, to Status) bool {
	return CheckTransition(from, to) == nil
}

// CheckTransition explains why from -> to is refused. A decided candidate
// yields ErrTerminalStatus. A stored status outside the review workflow,
// such as legacy done rows, yields ErrNotReviewable.
func CheckTransition(from, to Status) error {
	switch {
	case to != StatusAccepted && to != StatusRejected:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	case from.Terminal():
		return fmt.Errorf("%w: %s", ErrTerminalStatus, from)
	case !from.Reviewable():
		return fmt.Errorf("%w: %s", ErrNotReviewable, from)
	}
	return nil
}

// ParseReviewStatus parses a status a reviewer may assign.
func ParseReviewStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAccepted, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Evaluation is the assessment of one criterion.
type Evaluation struct {
	Criteria    string `json:"criteria"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Attachment describes a stored CV file.
type Attachment struct {
	Key       string `json:"key"`
	FileName  string `json:"file_name"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`
	PageCount *int   `json:"page_count,omitempty"`
}

// Candidate is one screened applicant within a batch.
type Candidate struct {
	ID             uuid.UUID    `json:"id"`
	BatchID        uuid.UUID    `json:"batch_id"`
	JobID          uuid.UUID    `json:"job_id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          *string      `json:"phone,omitempty"`
	Skills         []string     `json:"skills"`
	Status         Status       `json:"status"`
	Score          *int         `json:"score,omitempty"`
	Evaluation     []Evaluation `json:"evaluation"`
	Summary        string       `json:"summary"`
	SubmissionDate time.Time    `json:"submission_date"`
	CV             *Attachment  `json:"cv,omitempty"`
}

// CreateCommand carries a fully assembled candidate record.
// A zero ID is replaced with a new one.
type CreateCommand struct {
	ID         uuid.UUID
	BatchID    uuid.UUID
	Name       string
	Email      string
	Phone      *string
	Skills     []string
	Status     Status
	Score      *int
	Evaluation []Evaluation
	Summary    string
	CV         *Attachment
}

// StatusCommand is the request body for a status change.
type StatusCommand struct {
	Status string `json:"status"`
}

// Download is an open CV attachment stream. Callers must close Body.
type Download struct {
	Body        io.ReadCloser
	FileName    string
	ContentType string
	Size        int64
}
