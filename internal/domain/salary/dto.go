package salary

import (
	"github.com/shopspring/decimal"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

// ReportRow is one worker's monthly payroll figure with every intermediate
// value emitted so callers can audit the computation.
type ReportRow struct {
	WorkerID       string `json:"worker_id"`
	WorkerName     string `json:"worker_name"`
	RFID           string `json:"rfid"`
	DepartmentName string `json:"department_name"`

	Year        int `json:"year"`
	Month       int `json:"month"`
	WorkingDays int `json:"working_days"`

	RequiredHours float64 `json:"required_hours"`
	WorkedHours   float64 `json:"worked_hours"`

	// IsPresent is a single month-level threshold: workedHours >=
	// requiredHours. Preserved from the source system as-is.
	IsPresent bool `json:"is_present"`

	BaseSalary decimal.Decimal `json:"base_salary"`

	// NominalPerDaySalary is the stored salary/30 figure;
	// ReportPerDaySalary is salary/workingDays computed here. The two
	// divisors coexist deliberately.
	NominalPerDaySalary decimal.Decimal `json:"nominal_per_day_salary"`
	ReportPerDaySalary  decimal.Decimal `json:"report_per_day_salary"`

	TotalSalary              decimal.Decimal `json:"total_salary"`
	CurrentMonthDeductions   decimal.Decimal `json:"current_month_deductions"`
	OutstandingPriorAdvances decimal.Decimal `json:"outstanding_prior_advances"`

	// PendingSalary may be negative; it is never clamped.
	PendingSalary decimal.Decimal `json:"pending_salary"`

	// Skipped marks a worker whose attendance data could not be read; the
	// row is zeroed rather than failing the whole report.
	Skipped      bool   `json:"skipped,omitempty"`
	SkippedCause string `json:"skipped_cause,omitempty"`
}

type ReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
