package worker

import "context"

type Service interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	List(ctx context.Context) ([]WorkerResponse, error)

	// Update recomputes NominalPerDaySalary when salary changes and shifts
	// FinalSalary by the same delta so accrued deductions survive the change.
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
}
