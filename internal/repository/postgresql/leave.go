package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/leave"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepositoryImpl{db: db}
}

// Create implements leave.Repository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			id, tenant, worker_id, type, status, start_date, end_date, total_days,
			start_time, end_time, reason, deducted_amount, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14
		)
		RETURNING id, tenant, worker_id, type, status, start_date, end_date, total_days,
			start_time, end_time, reason, deducted_amount, created_at, updated_at
	`

	var created leave.Leave
	err := q.QueryRow(ctx, query,
		l.ID, l.Tenant, l.WorkerID, l.Type, l.Status, l.StartDate, l.EndDate, l.TotalDays,
		l.StartTime, l.EndTime, l.Reason, l.DeductedAmount, l.CreatedAt, l.UpdatedAt,
	).Scan(
		&created.ID, &created.Tenant, &created.WorkerID, &created.Type, &created.Status,
		&created.StartDate, &created.EndDate, &created.TotalDays,
		&created.StartTime, &created.EndTime, &created.Reason, &created.DeductedAmount,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to insert leave: %w", err)
	}

	return created, nil
}

// GetByID implements leave.Repository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, tenant string, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.tenant, l.worker_id, l.type, l.status, l.start_date, l.end_date, l.total_days,
			l.start_time, l.end_time, l.reason, l.deducted_amount, l.created_at, l.updated_at, w.name
		FROM leaves l
		LEFT JOIN workers w ON w.id = l.worker_id AND w.tenant = l.tenant
		WHERE l.tenant = $1 AND l.id = $2
	`

	var l leave.Leave
	err := q.QueryRow(ctx, query, tenant, id).Scan(
		&l.ID, &l.Tenant, &l.WorkerID, &l.Type, &l.Status, &l.StartDate, &l.EndDate, &l.TotalDays,
		&l.StartTime, &l.EndTime, &l.Reason, &l.DeductedAmount, &l.CreatedAt, &l.UpdatedAt, &l.WorkerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}

	return l, nil
}

// ListByWorker implements leave.Repository.
func (r *leaveRepositoryImpl) ListByWorker(ctx context.Context, tenant string, workerID string) ([]leave.Leave, error) {
	query := `
		SELECT l.id, l.tenant, l.worker_id, l.type, l.status, l.start_date, l.end_date, l.total_days,
			l.start_time, l.end_time, l.reason, l.deducted_amount, l.created_at, l.updated_at, w.name
		FROM leaves l
		LEFT JOIN workers w ON w.id = l.worker_id AND w.tenant = l.tenant
		WHERE l.tenant = $1 AND l.worker_id = $2
		ORDER BY l.created_at DESC
	`
	return r.list(ctx, query, tenant, workerID)
}

// ListByTenant implements leave.Repository.
func (r *leaveRepositoryImpl) ListByTenant(ctx context.Context, tenant string, status *leave.Status) ([]leave.Leave, error) {
	if status != nil {
		query := `
			SELECT l.id, l.tenant, l.worker_id, l.type, l.status, l.start_date, l.end_date, l.total_days,
				l.start_time, l.end_time, l.reason, l.deducted_amount, l.created_at, l.updated_at, w.name
			FROM leaves l
			LEFT JOIN workers w ON w.id = l.worker_id AND w.tenant = l.tenant
			WHERE l.tenant = $1 AND l.status = $2
			ORDER BY l.created_at DESC
		`
		return r.list(ctx, query, tenant, *status)
	}

	query := `
		SELECT l.id, l.tenant, l.worker_id, l.type, l.status, l.start_date, l.end_date, l.total_days,
			l.start_time, l.end_time, l.reason, l.deducted_amount, l.created_at, l.updated_at, w.name
		FROM leaves l
		LEFT JOIN workers w ON w.id = l.worker_id AND w.tenant = l.tenant
		WHERE l.tenant = $1
		ORDER BY l.created_at DESC
	`
	return r.list(ctx, query, tenant)
}

func (r *leaveRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var l leave.Leave
		err := rows.Scan(
			&l.ID, &l.Tenant, &l.WorkerID, &l.Type, &l.Status, &l.StartDate, &l.EndDate, &l.TotalDays,
			&l.StartTime, &l.EndTime, &l.Reason, &l.DeductedAmount, &l.CreatedAt, &l.UpdatedAt, &l.WorkerName,
		)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return leaves, nil
}

// UpdateStatus implements leave.Repository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, deducted_amount = $2, updated_at = $3
		WHERE tenant = $4 AND id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, l.Status, l.DeductedAmount, l.UpdatedAt, l.Tenant, l.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update leave status: %w", err)
	}

	return nil
}
