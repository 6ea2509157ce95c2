package leave

import "context"

type Service interface {
	Request(ctx context.Context, req RequestLeaveRequest) (LeaveResponse, error)

	// Approve moves a pending leave to Approved and deducts from the
	// worker's final salary: totalDays x nominal per-day salary, or for
	// Permission leaves a minute-prorated share of one day.
	Approve(ctx context.Context, id string) (LeaveResponse, error)

	Reject(ctx context.Context, id string) (LeaveResponse, error)

	ListByWorker(ctx context.Context, workerID string) ([]LeaveResponse, error)

	List(ctx context.Context, status *Status) ([]LeaveResponse, error)
}
