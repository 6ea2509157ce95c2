package advance

import "context"

type Repository interface {
	Create(ctx context.Context, a Advance) (Advance, error)

	GetByID(ctx context.Context, tenant string, id string) (Advance, error)

	// ListByWorker returns all advances for a worker with their full
	// deduction lists, oldest first. The salary report derives both
	// current-month deductions and outstanding prior balances from these.
	ListByWorker(ctx context.Context, tenant string, workerID string) ([]Advance, error)

	ListByTenant(ctx context.Context, tenant string) ([]Advance, error)

	// Update persists RemainingAmount and the appended deduction list.
	Update(ctx context.Context, a Advance) error
}
