package cohorts

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for cohort clustering.
type System interface {
	Handler() *Handler
	Cluster(ctx context.Context, batchID uuid.UUID, opts Options) (*Result, error)
}
