// Package batches groups candidate submissions for one job. Batches are
// created explicitly, never deleted, and archived once screening is done.
package batches

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a batch.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Batch is a named group of candidates screened against one job.
type Batch struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the batch still accepts candidates.
func (b *Batch) Active() bool {
	return b.Status == StatusActive
}

// CreateCommand carries the fields for a new batch.
type CreateCommand struct {
	JobID uuid.UUID `json:"-"`
	Name  string    `json:"name" validate:"required,max=200"`
}
