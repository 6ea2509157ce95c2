package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/department"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.Repository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.Repository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, tenant, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant, name, created_at, updated_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query, d.ID, d.Tenant, d.Name, d.CreatedAt, d.UpdatedAt).Scan(
		&created.ID, &created.Tenant, &created.Name, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to insert department: %w", err)
	}

	return created, nil
}

// GetByID implements department.Repository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, tenant string, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant, name, created_at, updated_at
		FROM departments
		WHERE tenant = $1 AND id = $2
	`

	var d department.Department
	err := q.QueryRow(ctx, query, tenant, id).Scan(
		&d.ID, &d.Tenant, &d.Name, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return d, nil
}

// ListByTenant implements department.Repository.
func (r *departmentRepositoryImpl) ListByTenant(ctx context.Context, tenant string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant, name, created_at, updated_at
		FROM departments
		WHERE tenant = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Tenant, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}
