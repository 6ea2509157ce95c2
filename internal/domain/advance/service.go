package advance

import "context"

// Service defines the advance ledger operations. Both mutations also adjust
// the worker's running final-salary balance, atomically with the ledger
// change.
type Service interface {
	// Issue creates an advance with RemainingAmount = Amount and decrements
	// the worker's final salary by the same amount.
	Issue(ctx context.Context, req IssueRequest) (AdvanceResponse, error)

	// Deduct appends a repayment entry, decrements RemainingAmount and
	// increments the worker's final salary. Rejected when the amount is not
	// positive or exceeds the remaining balance.
	Deduct(ctx context.Context, req DeductRequest) (AdvanceResponse, error)

	Get(ctx context.Context, id string) (AdvanceResponse, error)

	ListByWorker(ctx context.Context, workerID string) ([]AdvanceResponse, error)
}
