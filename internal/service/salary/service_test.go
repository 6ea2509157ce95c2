package salary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/workforce-backend-go/internal/domain/advance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/salary"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jobs"
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

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (r *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
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
	r.byTenant[s.Tenant] = s
	return s, nil
}

func (r *fakeSettingsRepo) SetDailyReportSent(ctx context.Context, tenant string, sent bool) error {
	s := r.byTenant[tenant]
	s.DailyReportSent = sent
	r.byTenant[tenant] = s
	return nil
}

func (r *fakeSettingsRepo) ResetDailyReportFlags(ctx context.Context) (int64, error) { return 0, nil }

func (r *fakeSettingsRepo) DistinctTenants(ctx context.Context) ([]string, error) { return nil, nil }

type fakeAdvanceRepo struct {
	byWorker map[string][]advance.Advance
}

func (r *fakeAdvanceRepo) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	return a, nil
}

func (r *fakeAdvanceRepo) GetByID(ctx context.Context, tenant string, id string) (advance.Advance, error) {
	return advance.Advance{}, advance.ErrAdvanceNotFound
}

func (r *fakeAdvanceRepo) ListByWorker(ctx context.Context, tenant string, workerID string) ([]advance.Advance, error) {
	return r.byWorker[workerID], nil
}

func (r *fakeAdvanceRepo) ListByTenant(ctx context.Context, tenant string) ([]advance.Advance, error) {
	return nil, nil
}

func (r *fakeAdvanceRepo) Update(ctx context.Context, a advance.Advance) error { return nil }

type fakeWorkedHours struct {
	byWorker map[string]float64
	failFor  string
}

func (f *fakeWorkedHours) WorkedHoursInRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) (float64, error) {
	if f.failFor == workerID {
		return 0, errors.New("corrupt attendance rows")
	}
	return f.byWorker[workerID], nil
}

type reportFixture struct {
	svc          *ServiceImpl
	workerRepo   *fakeWorkerRepo
	settingsRepo *fakeSettingsRepo
	advanceRepo  *fakeAdvanceRepo
	workedHours  *fakeWorkedHours
	jobStore     *jobs.Store
	ctx          context.Context
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	workerRepo := &fakeWorkerRepo{workers: []worker.Worker{{
		ID:                  "w1",
		Tenant:              "acme",
		Name:                "Asha",
		RFID:                "CARD01",
		DepartmentName:      "Assembly",
		Salary:              decimal.NewFromInt(26000),
		FinalSalary:         decimal.NewFromInt(26000),
		NominalPerDaySalary: decimal.NewFromInt(26000).Div(decimal.NewFromInt(30)).Round(2),
	}}}

	settingsRepo := &fakeSettingsRepo{byTenant: map[string]settings.Settings{
		"acme": {
			Tenant:             "acme",
			Timer:              settings.AttendanceTimer{GlobalHours: 8},
			MonthlyWorkingDays: map[string]int{"2025-03": 26},
		},
	}}

	advanceRepo := &fakeAdvanceRepo{byWorker: map[string][]advance.Advance{}}
	workedHours := &fakeWorkedHours{byWorker: map[string]float64{"w1": 10}}
	jobStore := jobs.NewStore()

	svc := NewService(workerRepo, settingsRepo, advanceRepo, workedHours, jobStore, time.UTC)

	return &reportFixture{
		svc:          svc,
		workerRepo:   workerRepo,
		settingsRepo: settingsRepo,
		advanceRepo:  advanceRepo,
		workedHours:  workedHours,
		jobStore:     jobStore,
		ctx:          authContext(t, "acme"),
	}
}

func TestGenerateMonthlyReport_PresentWorker(t *testing.T) {
	f := newReportFixture(t)

	rows, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "w1", row.WorkerID)
	assert.Equal(t, 26, row.WorkingDays)
	assert.Equal(t, float64(8), row.RequiredHours)
	assert.Equal(t, float64(10), row.WorkedHours)
	assert.True(t, row.IsPresent)
	assert.True(t, decimal.NewFromInt(1000).Equal(row.ReportPerDaySalary))
	assert.True(t, decimal.NewFromInt(26000).Equal(row.TotalSalary))
	assert.True(t, decimal.NewFromInt(26000).Equal(row.PendingSalary))
	assert.False(t, row.Skipped)
}

func TestGenerateMonthlyReport_AdvanceMath(t *testing.T) {
	f := newReportFixture(t)

	// Worker earns 3000 this month.
	f.workerRepo.workers[0].Salary = decimal.NewFromInt(3000)
	f.workedHours.byWorker["w1"] = 10

	// Prior advance of 1200, 200 repaid before March; 500 repaid during March.
	f.advanceRepo.byWorker["w1"] = []advance.Advance{{
		ID:              "a1",
		Tenant:          "acme",
		WorkerID:        "w1",
		Amount:          decimal.NewFromInt(1200),
		RemainingAmount: decimal.NewFromInt(500),
		Deductions: []advance.Deduction{
			{Amount: decimal.NewFromInt(200), Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
			{Amount: decimal.NewFromInt(500), Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		},
		CreatedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}}

	rows, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, decimal.NewFromInt(3000).Equal(row.TotalSalary), row.TotalSalary.String())
	assert.True(t, decimal.NewFromInt(500).Equal(row.CurrentMonthDeductions))
	// Outstanding at the start of March: 1200 - 200 repaid before it.
	assert.True(t, decimal.NewFromInt(1000).Equal(row.OutstandingPriorAdvances))
	// 3000 - 500 - 1000.
	assert.True(t, decimal.NewFromInt(1500).Equal(row.PendingSalary))
}

func TestGenerateMonthlyReport_AbsentWorkerCanGoNegative(t *testing.T) {
	f := newReportFixture(t)

	f.workedHours.byWorker["w1"] = 2 // under the 8h threshold
	f.advanceRepo.byWorker["w1"] = []advance.Advance{{
		ID:              "a1",
		Tenant:          "acme",
		WorkerID:        "w1",
		Amount:          decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
		CreatedAt:       time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}}

	rows, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.False(t, row.IsPresent)
	assert.True(t, row.TotalSalary.IsZero())
	// Never clamped: 0 - 0 - 1000.
	assert.True(t, decimal.NewFromInt(-1000).Equal(row.PendingSalary), row.PendingSalary.String())
}

func TestGenerateMonthlyReport_MissingWorkingDays(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 4})
	assert.ErrorIs(t, err, salary.ErrMonthlyWorkingDaysNotSet)
}

func TestGenerateMonthlyReport_NoWorkers(t *testing.T) {
	f := newReportFixture(t)
	f.workerRepo.workers = nil

	_, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	assert.ErrorIs(t, err, salary.ErrNoWorkers)
}

func TestGenerateMonthlyReport_SkipsBrokenWorker(t *testing.T) {
	f := newReportFixture(t)

	f.workerRepo.workers = append(f.workerRepo.workers, worker.Worker{
		ID:     "w2",
		Tenant: "acme",
		Name:   "Ravi",
		Salary: decimal.NewFromInt(15000),
	})
	f.workedHours.failFor = "w2"

	rows, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.False(t, rows[0].Skipped)
	assert.True(t, rows[1].Skipped)
	assert.Equal(t, "w2", rows[1].WorkerID)
	assert.NotEmpty(t, rows[1].SkippedCause)
}

func TestGenerateMonthlyReport_IsIdempotent(t *testing.T) {
	f := newReportFixture(t)

	first, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	second, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateMonthlyReport_SetsDailyReportFlag(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	assert.True(t, f.settingsRepo.byTenant["acme"].DailyReportSent)
}

func TestGenerateMonthlyReport_InvalidRequest(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.GenerateMonthlyReport(f.ctx, salary.ReportRequest{Year: 2025, Month: 13})
	assert.Error(t, err)
}

func TestGenerateMonthlyReportAsync(t *testing.T) {
	f := newReportFixture(t)

	jobID, err := f.svc.GenerateMonthlyReportAsync(f.ctx, salary.ReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	require.Eventually(t, func() bool {
		status, ok := f.jobStore.Get(jobID)
		return ok && status.State == jobs.StateDone
	}, 2*time.Second, 10*time.Millisecond)

	status, _ := f.jobStore.Get(jobID)
	rows, ok := status.ReturnValue.([]salary.ReportRow)
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestGenerateMonthlyReportAsync_FailureRecorded(t *testing.T) {
	f := newReportFixture(t)

	jobID, err := f.svc.GenerateMonthlyReportAsync(f.ctx, salary.ReportRequest{Year: 2025, Month: 4})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		status, ok := f.jobStore.Get(jobID)
		return ok && status.State == jobs.StateFailed
	}, 2*time.Second, 10*time.Millisecond)

	status, _ := f.jobStore.Get(jobID)
	assert.Contains(t, status.Reason, "working days")
}
