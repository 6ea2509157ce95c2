package worker

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, w Worker) (Worker, error)

	GetByID(ctx context.Context, tenant string, id string) (Worker, error)

	// GetByRFID resolves the physical card to a worker within the tenant.
	GetByRFID(ctx context.Context, tenant string, rfid string) (Worker, error)

	ListByTenant(ctx context.Context, tenant string) ([]Worker, error)

	Update(ctx context.Context, w Worker) error

	// AdjustFinalSalary atomically adds delta (which may be negative) to the
	// worker's running balance. Callers wrap it in a transaction together
	// with the advance or leave mutation that caused it.
	AdjustFinalSalary(ctx context.Context, tenant string, id string, delta decimal.Decimal) error
}
