package department

import "context"

type Repository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, tenant string, id string) (Department, error)
	ListByTenant(ctx context.Context, tenant string) ([]Department, error)
}
