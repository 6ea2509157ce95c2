package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/department"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/geo"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/timeutil"
)

// closeOutWallClock is the synthetic out-punch time written when an open IN
// is closed after the fact, either by the nightly sweep or by the carry-over
// correction on the worker's next punch. End of standard business hours.
const closeOutWallClock = "06:00 PM"

type ServiceImpl struct {
	tx             database.TxRunner
	eventRepo      attendance.EventRepository
	workerRepo     worker.Repository
	departmentRepo department.Repository
	settingsRepo   settings.Repository
	location       *time.Location
	now            func() time.Time
}

func NewService(
	tx database.TxRunner,
	eventRepo attendance.EventRepository,
	workerRepo worker.Repository,
	departmentRepo department.Repository,
	settingsRepo settings.Repository,
	location *time.Location,
) *ServiceImpl {
	return &ServiceImpl{
		tx:             tx,
		eventRepo:      eventRepo,
		workerRepo:     workerRepo,
		departmentRepo: departmentRepo,
		settingsRepo:   settingsRepo,
		location:       location,
		now:            time.Now,
	}
}

func (s *ServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	w, err := s.workerRepo.GetByRFID(ctx, tenant, req.RFID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	dept, err := s.departmentRepo.GetByID(ctx, tenant, w.DepartmentID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to resolve department for worker %s: %w", w.ID, err)
	}

	if err := s.checkGeofence(ctx, tenant, req); err != nil {
		return attendance.PunchResponse{}, err
	}

	nowLocal := s.now().In(s.location)
	today := timeutil.DayKey(nowLocal, s.location)

	presence := true
	var carryOver *attendance.Event

	if req.Presence != nil {
		// An explicit flag is an operator override. It bypasses the
		// transition resolver entirely, carry-over correction included.
		presence = *req.Presence
	} else {
		last, err := s.eventRepo.LastByWorker(ctx, tenant, w.ID)
		if err != nil {
			return attendance.PunchResponse{}, fmt.Errorf("failed to load last event: %w", err)
		}

		switch {
		case last == nil:
			presence = true
		case !last.Presence:
			presence = true
		default:
			lastDay, dayErr := timeutil.NormalizeDayKey(last.Date)
			if dayErr == nil && lastDay != today {
				// Open IN from an earlier day. Close it on its own day so
				// today's punch starts a fresh session instead of being
				// swallowed as the stale session's OUT.
				carryOver = &attendance.Event{
					ID:               uuid.NewString(),
					Tenant:           tenant,
					WorkerID:         w.ID,
					RFID:             w.RFID,
					DepartmentID:     dept.ID,
					DepartmentName:   dept.Name,
					Date:             lastDay,
					Time:             closeOutWallClock,
					Presence:         false,
					IsMissedOutPunch: true,
					CreatedAt:        s.now().UTC(),
				}
				presence = true
			} else {
				presence = false
			}
		}
	}

	event := attendance.Event{
		ID:             uuid.NewString(),
		Tenant:         tenant,
		WorkerID:       w.ID,
		RFID:           w.RFID,
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
		Date:           today,
		Time:           timeutil.WallClock(nowLocal, s.location),
		Presence:       presence,
		CreatedAt:      s.now().UTC(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if carryOver != nil {
			if _, err := s.eventRepo.Create(ctx, *carryOver); err != nil {
				return fmt.Errorf("failed to create carry-over correction: %w", err)
			}
		}
		created, err := s.eventRepo.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to create punch event: %w", err)
		}
		event = created
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	if carryOver != nil {
		slog.Info("Applied carry-over correction before punch",
			"tenant", tenant,
			"worker_id", w.ID,
			"closed_date", carryOver.Date)
	}

	return attendance.PunchResponse{
		EventID:           event.ID,
		WorkerID:          w.ID,
		WorkerName:        w.Name,
		DepartmentName:    dept.Name,
		Date:              event.Date,
		Time:              event.Time,
		Presence:          event.Presence,
		CorrectionApplied: carryOver != nil,
	}, nil
}

func (s *ServiceImpl) checkGeofence(ctx context.Context, tenant string, req attendance.PunchRequest) error {
	cfg, err := s.settingsRepo.GetByTenant(ctx, tenant)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load settings: %w", err)
	}

	zone := geo.Zone{
		Enabled:      cfg.Geofence.Enabled,
		Latitude:     cfg.Geofence.Latitude,
		Longitude:    cfg.Geofence.Longitude,
		RadiusMeters: cfg.Geofence.RadiusMeters,
	}

	var point *geo.Point
	if req.Latitude != nil && req.Longitude != nil {
		point = &geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	result := geo.Evaluate(zone, point)
	if result.Allowed {
		return nil
	}

	if result.Reason == geo.ReasonNoLocation {
		return attendance.ErrLocationRequired
	}

	slog.Warn("Punch denied outside geofence",
		"tenant", tenant,
		"rfid", req.RFID,
		"distance_meters", result.DistanceMeters)
	return attendance.ErrOutsideAllowedRadius
}

func (s *ServiceImpl) WorkerReport(ctx context.Context, filter attendance.ReportFilter) ([]attendance.DaySummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	if _, err := s.workerRepo.GetByID(ctx, tenant, filter.WorkerID); err != nil {
		return nil, err
	}

	startKey := filter.StartDate
	if startKey == "" {
		startKey = "0001-01-01"
	}
	endKey := filter.EndDate
	if endKey == "" {
		endKey = "9999-12-31"
	}

	events, err := s.eventRepo.ListByWorkerRange(ctx, tenant, filter.WorkerID, startKey, endKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	return deriveDays(events), nil
}

// WorkedHoursInRange sums worked duration over a day-key range. The salary
// report uses it for the month-level presence threshold.
func (s *ServiceImpl) WorkedHoursInRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) (float64, error) {
	events, err := s.eventRepo.ListByWorkerRange(ctx, tenant, workerID, startKey, endKey)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return totalWorkedHours(events), nil
}
