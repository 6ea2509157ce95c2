package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/advance"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

// Deductions live as a JSONB array on the advance row. They are append-only
// and always read with their advance, so a child table buys nothing.
type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.Repository {
	return &advanceRepositoryImpl{db: db}
}

func marshalDeductions(deductions []advance.Deduction) ([]byte, error) {
	if deductions == nil {
		deductions = []advance.Deduction{}
	}
	return json.Marshal(deductions)
}

func scanAdvance(row pgx.Row, withWorkerName bool) (advance.Advance, error) {
	var (
		a              advance.Advance
		deductionsJSON []byte
	)

	dest := []interface{}{
		&a.ID, &a.Tenant, &a.WorkerID, &a.Amount, &a.RemainingAmount,
		&deductionsJSON, &a.CreatedAt, &a.UpdatedAt,
	}
	if withWorkerName {
		dest = append(dest, &a.WorkerName)
	}

	if err := row.Scan(dest...); err != nil {
		return advance.Advance{}, err
	}

	if err := json.Unmarshal(deductionsJSON, &a.Deductions); err != nil {
		return advance.Advance{}, fmt.Errorf("failed to decode deductions: %w", err)
	}

	return a, nil
}

// Create implements advance.Repository.
func (r *advanceRepositoryImpl) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	deductionsJSON, err := marshalDeductions(a.Deductions)
	if err != nil {
		return advance.Advance{}, err
	}

	query := `
		INSERT INTO advances (
			id, tenant, worker_id, amount, remaining_amount, deductions, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		RETURNING id, tenant, worker_id, amount, remaining_amount, deductions, created_at, updated_at
	`

	created, err := scanAdvance(q.QueryRow(ctx, query,
		a.ID, a.Tenant, a.WorkerID, a.Amount, a.RemainingAmount,
		deductionsJSON, a.CreatedAt, a.UpdatedAt,
	), false)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to insert advance: %w", err)
	}

	return created, nil
}

// GetByID implements advance.Repository.
func (r *advanceRepositoryImpl) GetByID(ctx context.Context, tenant string, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.tenant, a.worker_id, a.amount, a.remaining_amount,
			a.deductions, a.created_at, a.updated_at, w.name
		FROM advances a
		LEFT JOIN workers w ON w.id = a.worker_id AND w.tenant = a.tenant
		WHERE a.tenant = $1 AND a.id = $2
	`

	a, err := scanAdvance(q.QueryRow(ctx, query, tenant, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return a, nil
}

// ListByWorker implements advance.Repository.
func (r *advanceRepositoryImpl) ListByWorker(ctx context.Context, tenant string, workerID string) ([]advance.Advance, error) {
	query := `
		SELECT a.id, a.tenant, a.worker_id, a.amount, a.remaining_amount,
			a.deductions, a.created_at, a.updated_at, w.name
		FROM advances a
		LEFT JOIN workers w ON w.id = a.worker_id AND w.tenant = a.tenant
		WHERE a.tenant = $1 AND a.worker_id = $2
		ORDER BY a.created_at ASC
	`
	return r.list(ctx, query, tenant, workerID)
}

// ListByTenant implements advance.Repository.
func (r *advanceRepositoryImpl) ListByTenant(ctx context.Context, tenant string) ([]advance.Advance, error) {
	query := `
		SELECT a.id, a.tenant, a.worker_id, a.amount, a.remaining_amount,
			a.deductions, a.created_at, a.updated_at, w.name
		FROM advances a
		LEFT JOIN workers w ON w.id = a.worker_id AND w.tenant = a.tenant
		WHERE a.tenant = $1
		ORDER BY a.created_at ASC
	`
	return r.list(ctx, query, tenant)
}

func (r *advanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows, true)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return advances, nil
}

// Update implements advance.Repository.
func (r *advanceRepositoryImpl) Update(ctx context.Context, a advance.Advance) error {
	q := GetQuerier(ctx, r.db)

	deductionsJSON, err := marshalDeductions(a.Deductions)
	if err != nil {
		return err
	}

	query := `
		UPDATE advances
		SET remaining_amount = $1, deductions = $2, updated_at = $3
		WHERE tenant = $4 AND id = $5
		RETURNING id
	`

	var updatedID string
	err = q.QueryRow(ctx, query, a.RemainingAmount, deductionsJSON, a.UpdatedAt, a.Tenant, a.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to update advance: %w", err)
	}

	return nil
}
