package batches

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for batch domain operations.
type System interface {
	Handler() *Handler

	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Batch, error)
	Find(ctx context.Context, id uuid.UUID) (*Batch, error)
	Create(ctx context.Context, cmd CreateCommand) (*Batch, error)
	// Archive moves an active batch to archived. Archiving twice returns ErrArchived.
	Archive(ctx context.Context, id uuid.UUID) (*Batch, error)
}
