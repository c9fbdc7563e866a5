package candidates

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/pagination"
)

// System defines the public contract for candidate domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Candidate], error)
	// ListByBatch returns every candidate in the batch, oldest submission first.
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]Candidate, error)
	Find(ctx context.Context, id uuid.UUID) (*Candidate, error)
	Create(ctx context.Context, cmd CreateCommand) (*Candidate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Candidate, error)
	Attachment(ctx context.Context, id uuid.UUID) (*Download, error)
}
