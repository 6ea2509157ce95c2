package leave

import (
	"github.com/shopspring/decimal"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

type RequestLeaveRequest struct {
	WorkerID  string  `json:"worker_id"`
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	StartTime *string `json:"start_time,omitempty"` // Permission only, "03:04 PM"
	EndTime   *string `json:"end_time,omitempty"`
	Reason    string  `json:"reason"`
}

func (r *RequestLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	validTypes := []string{string(TypePermission), string(TypeCasual), string(TypeSick), string(TypeUnpaid)}
	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: Permission, Casual, Sick, Unpaid",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Type == string(TypePermission) {
		if r.StartTime == nil || r.EndTime == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time and end_time are required for Permission leaves",
			})
		}
		if startOK && endOK && r.StartDate != r.EndDate {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "Permission leaves must start and end on the same day",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveResponse struct {
	ID             string           `json:"id"`
	WorkerID       string           `json:"worker_id"`
	WorkerName     string           `json:"worker_name,omitempty"`
	Type           string           `json:"type"`
	Status         string           `json:"status"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	TotalDays      int              `json:"total_days"`
	StartTime      *string          `json:"start_time,omitempty"`
	EndTime        *string          `json:"end_time,omitempty"`
	Reason         string           `json:"reason"`
	DeductedAmount *decimal.Decimal `json:"deducted_amount,omitempty"`
	CreatedAt      string           `json:"created_at"`
}
