package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/timeutil"
)

// closeOutWallClock is written as the out time on auto-closed sessions.
const closeOutWallClock = "06:00 PM"

// AttendanceJobs bundles the scheduled attendance sweeps. The scheduler owns
// the hour gating; each sweep here only needs the tenant-local clock to pick
// the day it operates on.
type AttendanceJobs struct {
	eventRepo     attendance.EventRepository
	settingsRepo  settings.Repository
	location      *time.Location
	autoCloseHour int
	now           func() time.Time
}

func NewAttendanceJobs(
	eventRepo attendance.EventRepository,
	settingsRepo settings.Repository,
	location *time.Location,
	autoCloseHour int,
) *AttendanceJobs {
	return &AttendanceJobs{
		eventRepo:     eventRepo,
		settingsRepo:  settingsRepo,
		location:      location,
		autoCloseHour: autoCloseHour,
		now:           time.Now,
	}
}

// Register wires the sweeps into the scheduler: session close-out at the
// configured hour, report-flag reset just after midnight.
func (j *AttendanceJobs) Register(s *Scheduler) {
	s.AddJob("attendance-auto-close", j.autoCloseHour, j.AutoCloseOpenSessions)
	s.AddJob("daily-report-flag-reset", 0, j.ResetDailyReportFlags)
}

// AutoCloseOpenSessions appends a synthetic missed-punch OUT for every worker
// whose latest event today is still an open IN. Runs across all tenants in
// one pass. Idempotent: once the OUT lands, the worker's latest event is no
// longer an IN and a rerun skips them.
func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	today := timeutil.DayKey(j.now(), j.location)

	latest, err := j.eventRepo.ListLatestForDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list latest events for %s: %w", today, err)
	}

	closed := 0
	for _, ev := range latest {
		if !ev.Presence {
			continue
		}

		correction := attendance.Event{
			ID:               uuid.NewString(),
			Tenant:           ev.Tenant,
			WorkerID:         ev.WorkerID,
			RFID:             ev.RFID,
			DepartmentID:     ev.DepartmentID,
			DepartmentName:   ev.DepartmentName,
			Date:             ev.Date,
			Time:             closeOutWallClock,
			Presence:         false,
			IsMissedOutPunch: true,
			CreatedAt:        j.now().UTC(),
		}

		if _, err := j.eventRepo.Create(ctx, correction); err != nil {
			// One bad row must not leave every other session open.
			slog.Error("Failed to auto-close session",
				"tenant", ev.Tenant,
				"worker_id", ev.WorkerID,
				"date", ev.Date,
				"error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		slog.Info("Auto-closed open attendance sessions", "date", today, "count", closed)
	}

	return nil
}

// ResetDailyReportFlags clears every tenant's daily-report-sent flag so the
// next day's report can go out.
func (j *AttendanceJobs) ResetDailyReportFlags(ctx context.Context) error {
	count, err := j.settingsRepo.ResetDailyReportFlags(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset daily report flags: %w", err)
	}

	if count > 0 {
		slog.Info("Reset daily report flags", "tenants", count)
	}

	return nil
}
