package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
)

type fakeEventRepo struct {
	events []attendance.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeEventRepo) LastByWorker(ctx context.Context, tenant string, workerID string) (*attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) ListByWorkerRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) ([]attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) ListLatestForDate(ctx context.Context, dayKey string) ([]attendance.Event, error) {
	latest := make(map[string]attendance.Event)
	for _, ev := range r.events {
		if ev.Date != dayKey {
			continue
		}
		key := ev.Tenant + "/" + ev.RFID
		if cur, ok := latest[key]; !ok || ev.CreatedAt.After(cur.CreatedAt) {
			latest[key] = ev
		}
	}
	out := make([]attendance.Event, 0, len(latest))
	for _, ev := range latest {
		out = append(out, ev)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	resetCalls int
	flagged    int64
}

func (r *fakeSettingsRepo) GetByTenant(ctx context.Context, tenant string) (settings.Settings, error) {
	return settings.Settings{}, settings.ErrSettingsNotFound
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	return s, nil
}

func (r *fakeSettingsRepo) SetDailyReportSent(ctx context.Context, tenant string, sent bool) error {
	return nil
}

func (r *fakeSettingsRepo) ResetDailyReportFlags(ctx context.Context) (int64, error) {
	r.resetCalls++
	return r.flagged, nil
}

func (r *fakeSettingsRepo) DistinctTenants(ctx context.Context) ([]string, error) { return nil, nil }

func openIn(tenant, rfid, date string, at time.Time) attendance.Event {
	return attendance.Event{
		ID:        tenant + "/" + rfid + "/" + at.String(),
		Tenant:    tenant,
		WorkerID:  "worker-" + rfid,
		RFID:      rfid,
		Date:      date,
		Time:      "09:00 AM",
		Presence:  true,
		CreatedAt: at,
	}
}

func newJobsAt(eventRepo *fakeEventRepo, settingsRepo *fakeSettingsRepo, at time.Time) *AttendanceJobs {
	jobs := NewAttendanceJobs(eventRepo, settingsRepo, time.UTC, 23)
	jobs.now = func() time.Time { return at }
	return jobs
}

func newSchedulerAt(at time.Time) *Scheduler {
	s := NewScheduler(time.UTC)
	s.now = func() time.Time { return at }
	return s
}

func TestAutoClose_ClosesOpenSessions(t *testing.T) {
	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	eventRepo := &fakeEventRepo{events: []attendance.Event{
		openIn("acme", "CARD01", "2025-03-07", base),
		openIn("globex", "CARD09", "2025-03-07", base),
	}}
	jobs := newJobsAt(eventRepo, &fakeSettingsRepo{}, time.Date(2025, 3, 7, 23, 5, 0, 0, time.UTC))

	require.NoError(t, jobs.AutoCloseOpenSessions(context.Background()))

	// One synthetic OUT per open session, across both tenants.
	require.Len(t, eventRepo.events, 4)
	for _, ev := range eventRepo.events[2:] {
		assert.False(t, ev.Presence)
		assert.True(t, ev.IsMissedOutPunch)
		assert.Equal(t, "06:00 PM", ev.Time)
		assert.Equal(t, "2025-03-07", ev.Date)
	}
}

func TestAutoClose_IsIdempotent(t *testing.T) {
	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	eventRepo := &fakeEventRepo{events: []attendance.Event{
		openIn("acme", "CARD01", "2025-03-07", base),
	}}
	jobs := newJobsAt(eventRepo, &fakeSettingsRepo{}, time.Date(2025, 3, 7, 23, 5, 0, 0, time.UTC))

	require.NoError(t, jobs.AutoCloseOpenSessions(context.Background()))
	require.Len(t, eventRepo.events, 2)

	// The synthetic OUT is now the latest event, so a rerun adds nothing.
	jobs.now = func() time.Time { return time.Date(2025, 3, 7, 23, 30, 0, 0, time.UTC) }
	require.NoError(t, jobs.AutoCloseOpenSessions(context.Background()))
	assert.Len(t, eventRepo.events, 2)
}

func TestAutoClose_SkipsAlreadyClosedSessions(t *testing.T) {
	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	out := openIn("acme", "CARD01", "2025-03-07", base.Add(8*time.Hour))
	out.Presence = false
	eventRepo := &fakeEventRepo{events: []attendance.Event{
		openIn("acme", "CARD01", "2025-03-07", base),
		out,
	}}
	jobs := newJobsAt(eventRepo, &fakeSettingsRepo{}, time.Date(2025, 3, 7, 23, 5, 0, 0, time.UTC))

	require.NoError(t, jobs.AutoCloseOpenSessions(context.Background()))
	assert.Len(t, eventRepo.events, 2)
}

func TestScheduler_RunsJobsOnlyInTheirHour(t *testing.T) {
	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	eventRepo := &fakeEventRepo{events: []attendance.Event{
		openIn("acme", "CARD01", "2025-03-07", base),
	}}
	at := time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC)
	jobs := newJobsAt(eventRepo, &fakeSettingsRepo{}, at)

	s := newSchedulerAt(at)
	jobs.Register(s)

	// 14:00 is neither the close-out hour nor midnight.
	s.RunOnce(context.Background())
	assert.Len(t, eventRepo.events, 1)

	s.now = func() time.Time { return time.Date(2025, 3, 7, 23, 5, 0, 0, time.UTC) }
	jobs.now = s.now
	s.RunOnce(context.Background())
	assert.Len(t, eventRepo.events, 2)
}

func TestScheduler_ResetsFlagsAtMidnightOnly(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{flagged: 3}
	at := time.Date(2025, 3, 8, 0, 10, 0, 0, time.UTC)
	jobs := newJobsAt(&fakeEventRepo{}, settingsRepo, at)

	s := newSchedulerAt(at)
	jobs.Register(s)

	s.RunOnce(context.Background())
	assert.Equal(t, 1, settingsRepo.resetCalls)

	s.now = func() time.Time { return time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC) }
	s.RunOnce(context.Background())
	assert.Equal(t, 1, settingsRepo.resetCalls)
}

func TestScheduler_SweepEndToEnd(t *testing.T) {
	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	eventRepo := &fakeEventRepo{events: []attendance.Event{
		openIn("acme", "CARD01", "2025-03-07", base),
	}}
	at := time.Date(2025, 3, 7, 23, 5, 0, 0, time.UTC)
	jobs := newJobsAt(eventRepo, &fakeSettingsRepo{}, at)

	s := newSchedulerAt(at)
	jobs.Register(s)
	s.RunOnce(context.Background())

	require.Len(t, eventRepo.events, 2)
	assert.True(t, eventRepo.events[1].IsMissedOutPunch)
}
