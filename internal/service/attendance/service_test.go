package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/department"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
)

func authContext(t *testing.T, tenant string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"tenant":    tenant,
		"worker_id": "admin-1",
		"role":      "admin",
		"type":      "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEventRepo struct {
	events  []attendance.Event
	failure error
}

func (r *fakeEventRepo) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	if r.failure != nil {
		return attendance.Event{}, r.failure
	}
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeEventRepo) LastByWorker(ctx context.Context, tenant string, workerID string) (*attendance.Event, error) {
	var last *attendance.Event
	for i := range r.events {
		ev := r.events[i]
		if ev.Tenant != tenant || ev.WorkerID != workerID {
			continue
		}
		if last == nil || ev.CreatedAt.After(last.CreatedAt) {
			last = &r.events[i]
		}
	}
	return last, nil
}

func (r *fakeEventRepo) ListByWorkerRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range r.events {
		if ev.Tenant == tenant && ev.WorkerID == workerID && ev.Date >= startKey && ev.Date <= endKey {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
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

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (r *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.workers = append(r.workers, w)
	return w, nil
}

func (r *fakeWorkerRepo) GetByID(ctx context.Context, tenant string, id string) (worker.Worker, error) {
	for _, w := range r.workers {
		if w.Tenant == tenant && w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *fakeWorkerRepo) GetByRFID(ctx context.Context, tenant string, rfid string) (worker.Worker, error) {
	for _, w := range r.workers {
		if w.Tenant == tenant && w.RFID == rfid {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *fakeWorkerRepo) ListByTenant(ctx context.Context, tenant string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range r.workers {
		if w.Tenant == tenant {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) error { return nil }

func (r *fakeWorkerRepo) AdjustFinalSalary(ctx context.Context, tenant string, id string, delta decimal.Decimal) error {
	return nil
}

type fakeDepartmentRepo struct {
	departments []department.Department
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	r.departments = append(r.departments, d)
	return d, nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, tenant string, id string) (department.Department, error) {
	for _, d := range r.departments {
		if d.Tenant == tenant && d.ID == id {
			return d, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *fakeDepartmentRepo) ListByTenant(ctx context.Context, tenant string) ([]department.Department, error) {
	return r.departments, nil
}

type fakeSettingsRepo struct {
	byTenant map[string]settings.Settings
}

func (r *fakeSettingsRepo) GetByTenant(ctx context.Context, tenant string) (settings.Settings, error) {
	if s, ok := r.byTenant[tenant]; ok {
		return s, nil
	}
	return settings.Settings{}, settings.ErrSettingsNotFound
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	if r.byTenant == nil {
		r.byTenant = make(map[string]settings.Settings)
	}
	r.byTenant[s.Tenant] = s
	return s, nil
}

func (r *fakeSettingsRepo) SetDailyReportSent(ctx context.Context, tenant string, sent bool) error {
	s := r.byTenant[tenant]
	s.DailyReportSent = sent
	r.byTenant[tenant] = s
	return nil
}

func (r *fakeSettingsRepo) ResetDailyReportFlags(ctx context.Context) (int64, error) {
	var count int64
	for tenant, s := range r.byTenant {
		if s.DailyReportSent {
			s.DailyReportSent = false
			r.byTenant[tenant] = s
			count++
		}
	}
	return count, nil
}

func (r *fakeSettingsRepo) DistinctTenants(ctx context.Context) ([]string, error) {
	var tenants []string
	for tenant := range r.byTenant {
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

type punchFixture struct {
	svc          *ServiceImpl
	eventRepo    *fakeEventRepo
	settingsRepo *fakeSettingsRepo
	ctx          context.Context
}

func newPunchFixture(t *testing.T) *punchFixture {
	t.Helper()

	eventRepo := &fakeEventRepo{}
	workerRepo := &fakeWorkerRepo{workers: []worker.Worker{{
		ID:           "w1",
		Tenant:       "acme",
		Name:         "Asha",
		RFID:         "CARD01",
		DepartmentID: "d1",
	}}}
	departmentRepo := &fakeDepartmentRepo{departments: []department.Department{{
		ID:     "d1",
		Tenant: "acme",
		Name:   "Assembly",
	}}}
	settingsRepo := &fakeSettingsRepo{byTenant: map[string]settings.Settings{}}

	svc := NewService(fakeTxRunner{}, eventRepo, workerRepo, departmentRepo, settingsRepo, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC) }

	return &punchFixture{
		svc:          svc,
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		ctx:          authContext(t, "acme"),
	}
}

func TestPunch_FirstPunchIsIn(t *testing.T) {
	f := newPunchFixture(t)

	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	assert.True(t, resp.Presence)
	assert.False(t, resp.CorrectionApplied)
	assert.Equal(t, "2025-03-07", resp.Date)
	assert.Equal(t, "09:00 AM", resp.Time)
	assert.Equal(t, "Asha", resp.WorkerName)
	assert.Equal(t, "Assembly", resp.DepartmentName)
	require.Len(t, f.eventRepo.events, 1)
	assert.Equal(t, "acme", f.eventRepo.events[0].Tenant)
}

func TestPunch_TogglesToOut(t *testing.T) {
	f := newPunchFixture(t)

	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 17, 0, 0, 0, time.UTC) }
	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	assert.False(t, resp.Presence)
	assert.Equal(t, "05:00 PM", resp.Time)
}

func TestPunch_AfterOutTogglesBackToIn(t *testing.T) {
	f := newPunchFixture(t)

	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC) }
	_, err = f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 13, 0, 0, 0, time.UTC) }
	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)
	assert.True(t, resp.Presence)
}

func TestPunch_CarryOverClosesYesterdaysOpenIn(t *testing.T) {
	f := newPunchFixture(t)

	// Open IN left on the 6th.
	f.svc.now = func() time.Time { return time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC) }
	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 8, 30, 0, 0, time.UTC) }
	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	assert.True(t, resp.Presence)
	assert.True(t, resp.CorrectionApplied)
	assert.Equal(t, "2025-03-07", resp.Date)

	require.Len(t, f.eventRepo.events, 3)
	correction := f.eventRepo.events[1]
	assert.Equal(t, "2025-03-06", correction.Date)
	assert.Equal(t, "06:00 PM", correction.Time)
	assert.False(t, correction.Presence)
	assert.True(t, correction.IsMissedOutPunch)

	// The correction must precede today's IN in insertion order.
	assert.True(t, f.eventRepo.events[2].Presence)
	assert.Equal(t, "2025-03-07", f.eventRepo.events[2].Date)
}

func TestPunch_ExplicitPresenceBypassesResolver(t *testing.T) {
	f := newPunchFixture(t)

	// Open IN left on the 6th.
	f.svc.now = func() time.Time { return time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC) }
	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	out := false
	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 8, 30, 0, 0, time.UTC) }
	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01", Presence: &out})
	require.NoError(t, err)

	// No correction: the explicit flag wins and no extra event appears.
	assert.False(t, resp.Presence)
	assert.False(t, resp.CorrectionApplied)
	assert.Len(t, f.eventRepo.events, 2)
}

func TestPunch_UnknownRFID(t *testing.T) {
	f := newPunchFixture(t)

	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "NOCARD99"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	assert.Empty(t, f.eventRepo.events)
}

func TestPunch_GeofenceDeniesOutOfRange(t *testing.T) {
	f := newPunchFixture(t)
	f.settingsRepo.byTenant["acme"] = settings.Settings{
		Tenant: "acme",
		Geofence: settings.Geofence{
			Enabled:      true,
			Latitude:     12.9716,
			Longitude:    77.5946,
			RadiusMeters: 100,
		},
	}

	lat, lon := 12.9816, 77.5946
	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01", Latitude: &lat, Longitude: &lon})
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
	assert.Empty(t, f.eventRepo.events)
}

func TestPunch_GeofenceRequiresLocation(t *testing.T) {
	f := newPunchFixture(t)
	f.settingsRepo.byTenant["acme"] = settings.Settings{
		Tenant: "acme",
		Geofence: settings.Geofence{
			Enabled:      true,
			Latitude:     12.9716,
			Longitude:    77.5946,
			RadiusMeters: 100,
		},
	}

	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	assert.ErrorIs(t, err, attendance.ErrLocationRequired)
}

func TestPunch_GeofenceAllowsInsideRadius(t *testing.T) {
	f := newPunchFixture(t)
	f.settingsRepo.byTenant["acme"] = settings.Settings{
		Tenant: "acme",
		Geofence: settings.Geofence{
			Enabled:      true,
			Latitude:     12.9716,
			Longitude:    77.5946,
			RadiusMeters: 100,
		},
	}

	lat, lon := 12.9716, 77.5946
	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01", Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)
	assert.True(t, resp.Presence)
}

func TestPunch_NoSettingsMeansNoGeofence(t *testing.T) {
	f := newPunchFixture(t)

	resp, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)
	assert.True(t, resp.Presence)
}

func TestPunch_InvalidRequest(t *testing.T) {
	f := newPunchFixture(t)

	lat := 12.9716
	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01", Latitude: &lat})
	assert.Error(t, err)
}

func TestWorkerReport(t *testing.T) {
	f := newPunchFixture(t)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC) }
	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 17, 0, 0, 0, time.UTC) }
	_, err = f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	days, err := f.svc.WorkerReport(f.ctx, attendance.ReportFilter{WorkerID: "w1"})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-07", days[0].Date)
	assert.Equal(t, "08:00:00", days[0].Worked)
}

func TestWorkerReport_UnknownWorker(t *testing.T) {
	f := newPunchFixture(t)

	_, err := f.svc.WorkerReport(f.ctx, attendance.ReportFilter{WorkerID: "ghost"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestWorkedHoursInRange(t *testing.T) {
	f := newPunchFixture(t)

	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC) }
	_, err := f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 17, 0, 0, 0, time.UTC) }
	_, err = f.svc.Punch(f.ctx, attendance.PunchRequest{RFID: "CARD01"})
	require.NoError(t, err)

	hours, err := f.svc.WorkedHoursInRange(context.Background(), "acme", "w1", "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.InDelta(t, 8.0, hours, 0.0001)
}
