package salary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stafftrack/workforce-backend-go/internal/domain/advance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/salary"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jobs"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/timeutil"
)

// WorkedHoursSource is the attendance-side input to the report: total worked
// hours for one worker over a day-key range.
type WorkedHoursSource interface {
	WorkedHoursInRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) (float64, error)
}

type ServiceImpl struct {
	workerRepo   worker.Repository
	settingsRepo settings.Repository
	advanceRepo  advance.Repository
	workedHours  WorkedHoursSource
	jobStore     *jobs.Store
	location     *time.Location
}

func NewService(
	workerRepo worker.Repository,
	settingsRepo settings.Repository,
	advanceRepo advance.Repository,
	workedHours WorkedHoursSource,
	jobStore *jobs.Store,
	location *time.Location,
) *ServiceImpl {
	return &ServiceImpl{
		workerRepo:   workerRepo,
		settingsRepo: settingsRepo,
		advanceRepo:  advanceRepo,
		workedHours:  workedHours,
		jobStore:     jobStore,
		location:     location,
	}
}

func (s *ServiceImpl) GenerateMonthlyReport(ctx context.Context, req salary.ReportRequest) ([]salary.ReportRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	return s.generate(ctx, tenant, req)
}

func (s *ServiceImpl) generate(ctx context.Context, tenant string, req salary.ReportRequest) ([]salary.ReportRow, error) {
	cfg, err := s.settingsRepo.GetByTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	month := time.Month(req.Month)
	workingDays, ok := cfg.MonthlyWorkingDays[timeutil.MonthKey(req.Year, month)]
	if !ok || workingDays <= 0 {
		return nil, salary.ErrMonthlyWorkingDaysNotSet
	}

	workers, err := s.workerRepo.ListByTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	if len(workers) == 0 {
		return nil, salary.ErrNoWorkers
	}

	startKey, endKey := timeutil.MonthRange(req.Year, month)

	rows := make([]salary.ReportRow, 0, len(workers))
	for _, w := range workers {
		row, err := s.workerRow(ctx, tenant, w, cfg, req, workingDays, startKey, endKey)
		if err != nil {
			// One worker's bad data must not sink everyone else's payroll.
			slog.Error("Skipping worker in salary report",
				"tenant", tenant,
				"worker_id", w.ID,
				"error", err)
			rows = append(rows, salary.ReportRow{
				WorkerID:     w.ID,
				WorkerName:   w.Name,
				RFID:         w.RFID,
				Year:         req.Year,
				Month:        req.Month,
				Skipped:      true,
				SkippedCause: err.Error(),
			})
			continue
		}
		rows = append(rows, row)
	}

	if err := s.settingsRepo.SetDailyReportSent(ctx, tenant, true); err != nil {
		slog.Error("Failed to mark daily report sent", "tenant", tenant, "error", err)
	}

	return rows, nil
}

func (s *ServiceImpl) workerRow(
	ctx context.Context,
	tenant string,
	w worker.Worker,
	cfg settings.Settings,
	req salary.ReportRequest,
	workingDays int,
	startKey, endKey string,
) (salary.ReportRow, error) {
	workedHours, err := s.workedHours.WorkedHoursInRange(ctx, tenant, w.ID, startKey, endKey)
	if err != nil {
		return salary.ReportRow{}, fmt.Errorf("failed to compute worked hours: %w", err)
	}

	requiredHours := cfg.RequiredHoursFor(w.ID)
	isPresent := workedHours >= requiredHours

	// salary/workingDays, distinct from the stored salary/30 nominal figure.
	reportPerDay := decimal.Zero
	if workingDays > 0 {
		reportPerDay = w.Salary.Div(decimal.NewFromInt(int64(workingDays)))
	}

	totalSalary := decimal.Zero
	if isPresent {
		totalSalary = reportPerDay.Mul(decimal.NewFromInt(int64(workingDays)))
	}

	currentDeductions, priorOutstanding, err := s.advanceFigures(ctx, tenant, w.ID, req.Year, time.Month(req.Month))
	if err != nil {
		return salary.ReportRow{}, err
	}

	pending := totalSalary.Sub(currentDeductions).Sub(priorOutstanding)

	return salary.ReportRow{
		WorkerID:                 w.ID,
		WorkerName:               w.Name,
		RFID:                     w.RFID,
		DepartmentName:           w.DepartmentName,
		Year:                     req.Year,
		Month:                    req.Month,
		WorkingDays:              workingDays,
		RequiredHours:            requiredHours,
		WorkedHours:              workedHours,
		IsPresent:                isPresent,
		BaseSalary:               w.Salary,
		NominalPerDaySalary:      w.NominalPerDaySalary,
		ReportPerDaySalary:       reportPerDay.Round(2),
		TotalSalary:              totalSalary.Round(2),
		CurrentMonthDeductions:   currentDeductions.Round(2),
		OutstandingPriorAdvances: priorOutstanding.Round(2),
		PendingSalary:            pending.Round(2),
	}, nil
}

// advanceFigures splits a worker's advance history at the report month:
// deductions recorded during the month, and the balance still owed on
// advances issued before it. Both reduce pending salary.
func (s *ServiceImpl) advanceFigures(ctx context.Context, tenant string, workerID string, year int, month time.Month) (currentDeductions, priorOutstanding decimal.Decimal, err error) {
	advances, err := s.advanceRepo.ListByWorker(ctx, tenant, workerID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to list advances: %w", err)
	}

	currentDeductions = decimal.Zero
	priorOutstanding = decimal.Zero

	for _, a := range advances {
		repaidBeforeMonth := decimal.Zero
		for _, d := range a.Deductions {
			if timeutil.InMonth(d.Date, year, month, s.location) {
				currentDeductions = currentDeductions.Add(d.Amount)
			}
			if timeutil.BeforeMonth(d.Date, year, month, s.location) {
				repaidBeforeMonth = repaidBeforeMonth.Add(d.Amount)
			}
		}

		if timeutil.BeforeMonth(a.CreatedAt, year, month, s.location) {
			outstanding := a.Amount.Sub(repaidBeforeMonth)
			if outstanding.IsNegative() {
				outstanding = decimal.Zero
			}
			priorOutstanding = priorOutstanding.Add(outstanding)
		}
	}

	return currentDeductions, priorOutstanding, nil
}

func (s *ServiceImpl) GenerateMonthlyReportAsync(ctx context.Context, req salary.ReportRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tenant: %w", err)
	}

	jobID := s.jobStore.Create()

	go func() {
		// Detached from the request; the HTTP context dies with the response.
		bgCtx := context.Background()
		s.jobStore.SetRunning(jobID, 0)

		rows, err := s.generate(bgCtx, tenant, req)
		if err != nil {
			slog.Error("Async salary report failed",
				"tenant", tenant, "job_id", jobID, "error", err)
			s.jobStore.Fail(jobID, err.Error())
			return
		}
		s.jobStore.Finish(jobID, rows)
	}()

	return jobID, nil
}
