package leave

import "context"

type Repository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, tenant string, id string) (Leave, error)
	ListByWorker(ctx context.Context, tenant string, workerID string) ([]Leave, error)
	ListByTenant(ctx context.Context, tenant string, status *Status) ([]Leave, error)

	// UpdateStatus records the approve/reject decision and, on approval, the
	// deducted amount.
	UpdateStatus(ctx context.Context, l Leave) error
}
