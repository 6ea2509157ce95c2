package advance

import (
	"github.com/shopspring/decimal"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

type IssueRequest struct {
	WorkerID    string          `json:"worker_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func (r *IssueRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeductRequest struct {
	AdvanceID   string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func (r *DeductRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AdvanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "advance_id",
			Message: "advance_id is required",
		})
	}

	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeductionResponse struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}

type AdvanceResponse struct {
	ID              string              `json:"id"`
	WorkerID        string              `json:"worker_id"`
	WorkerName      string              `json:"worker_name,omitempty"`
	Amount          decimal.Decimal     `json:"amount"`
	RemainingAmount decimal.Decimal     `json:"remaining_amount"`
	Deductions      []DeductionResponse `json:"deductions"`
	CreatedAt       string              `json:"created_at"`
}
