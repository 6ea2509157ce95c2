package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, tenant, worker_id, rfid, department_id, department_name,
			date, time, presence, is_missed_out_punch, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)
		RETURNING id, tenant, worker_id, rfid, department_id, department_name,
			date, time, presence, is_missed_out_punch, created_at
	`

	var created attendance.Event
	err := q.QueryRow(ctx, query,
		event.ID, event.Tenant, event.WorkerID, event.RFID, event.DepartmentID, event.DepartmentName,
		event.Date, event.Time, event.Presence, event.IsMissedOutPunch, event.CreatedAt,
	).Scan(
		&created.ID, &created.Tenant, &created.WorkerID, &created.RFID, &created.DepartmentID, &created.DepartmentName,
		&created.Date, &created.Time, &created.Presence, &created.IsMissedOutPunch, &created.CreatedAt,
	)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to insert attendance event: %w", err)
	}

	return created, nil
}

// LastByWorker implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) LastByWorker(ctx context.Context, tenant string, workerID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant, worker_id, rfid, department_id, department_name,
			date, time, presence, is_missed_out_punch, created_at
		FROM attendance_events
		WHERE tenant = $1 AND worker_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var ev attendance.Event
	err := q.QueryRow(ctx, query, tenant, workerID).Scan(
		&ev.ID, &ev.Tenant, &ev.WorkerID, &ev.RFID, &ev.DepartmentID, &ev.DepartmentName,
		&ev.Date, &ev.Time, &ev.Presence, &ev.IsMissedOutPunch, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last attendance event: %w", err)
	}

	return &ev, nil
}

// ListByWorkerRange implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) ListByWorkerRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.tenant, e.worker_id, e.rfid, e.department_id, e.department_name,
			e.date, e.time, e.presence, e.is_missed_out_punch, e.created_at, w.name
		FROM attendance_events e
		LEFT JOIN workers w ON w.id = e.worker_id AND w.tenant = e.tenant
		WHERE e.tenant = $1 AND e.worker_id = $2 AND e.date >= $3 AND e.date <= $4
		ORDER BY e.created_at ASC
	`

	rows, err := q.Query(ctx, query, tenant, workerID, startKey, endKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		err := rows.Scan(
			&ev.ID, &ev.Tenant, &ev.WorkerID, &ev.RFID, &ev.DepartmentID, &ev.DepartmentName,
			&ev.Date, &ev.Time, &ev.Presence, &ev.IsMissedOutPunch, &ev.CreatedAt, &ev.WorkerName,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// ListLatestForDate implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) ListLatestForDate(ctx context.Context, dayKey string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (tenant, rfid)
			id, tenant, worker_id, rfid, department_id, department_name,
			date, time, presence, is_missed_out_punch, created_at
		FROM attendance_events
		WHERE date = $1
		ORDER BY tenant, rfid, created_at DESC
	`

	rows, err := q.Query(ctx, query, dayKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		err := rows.Scan(
			&ev.ID, &ev.Tenant, &ev.WorkerID, &ev.RFID, &ev.DepartmentID, &ev.DepartmentName,
			&ev.Date, &ev.Time, &ev.Presence, &ev.IsMissedOutPunch, &ev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
