package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.Repository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `id, tenant, name, rfid, department_id, department_name,
		salary, final_salary, nominal_per_day_salary, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Tenant, &w.Name, &w.RFID, &w.DepartmentID, &w.DepartmentName,
		&w.Salary, &w.FinalSalary, &w.NominalPerDaySalary, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

// Create implements worker.Repository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (
			id, tenant, name, rfid, department_id, department_name,
			salary, final_salary, nominal_per_day_salary, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)
		RETURNING ` + workerColumns

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.Tenant, w.Name, w.RFID, w.DepartmentID, w.DepartmentName,
		w.Salary, w.FinalSalary, w.NominalPerDaySalary, w.CreatedAt, w.UpdatedAt,
	))
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to insert worker: %w", err)
	}

	return created, nil
}

// GetByID implements worker.Repository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, tenant string, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE tenant = $1 AND id = $2
	`

	w, err := scanWorker(q.QueryRow(ctx, query, tenant, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by id: %w", err)
	}

	return w, nil
}

// GetByRFID implements worker.Repository.
func (r *workerRepositoryImpl) GetByRFID(ctx context.Context, tenant string, rfid string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE tenant = $1 AND rfid = $2
	`

	w, err := scanWorker(q.QueryRow(ctx, query, tenant, rfid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by rfid: %w", err)
	}

	return w, nil
}

// ListByTenant implements worker.Repository.
func (r *workerRepositoryImpl) ListByTenant(ctx context.Context, tenant string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE tenant = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

// Update implements worker.Repository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET name = $1, department_id = $2, department_name = $3,
			salary = $4, final_salary = $5, nominal_per_day_salary = $6, updated_at = $7
		WHERE tenant = $8 AND id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		w.Name, w.DepartmentID, w.DepartmentName,
		w.Salary, w.FinalSalary, w.NominalPerDaySalary, w.UpdatedAt,
		w.Tenant, w.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to update worker: %w", err)
	}

	return nil
}

// AdjustFinalSalary implements worker.Repository.
func (r *workerRepositoryImpl) AdjustFinalSalary(ctx context.Context, tenant string, id string, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET final_salary = final_salary + $1, updated_at = NOW()
		WHERE tenant = $2 AND id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, delta, tenant, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to adjust final salary: %w", err)
	}

	return nil
}
