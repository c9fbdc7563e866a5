package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/pagination"
)

// System defines the public contract for job domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Job], error)

	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	Create(ctx context.Context, cmd CreateCommand) (*Job, error)
}
