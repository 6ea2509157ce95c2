package worker

import (
	"github.com/shopspring/decimal"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name         string          `json:"name"`
	RFID         string          `json:"rfid"`
	DepartmentID string          `json:"department_id"`
	Salary       decimal.Decimal `json:"salary"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.RFID) {
		errs = append(errs, validator.ValidationError{
			Field:   "rfid",
			Message: "rfid is required",
		})
	} else if !validator.IsValidRFID(r.RFID) {
		errs = append(errs, validator.ValidationError{
			Field:   "rfid",
			Message: "rfid must be 6-20 alphanumeric characters",
		})
	}

	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}

	if !validator.IsPositiveAmount(r.Salary) {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must be a positive amount",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	ID           string           `json:"-"`
	Name         *string          `json:"name,omitempty"`
	DepartmentID *string          `json:"department_id,omitempty"`
	Salary       *decimal.Decimal `json:"salary,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Salary != nil && !validator.IsPositiveAmount(*r.Salary) {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must be a positive amount",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	RFID                string          `json:"rfid"`
	DepartmentID        string          `json:"department_id"`
	DepartmentName      string          `json:"department_name"`
	Salary              decimal.Decimal `json:"salary"`
	FinalSalary         decimal.Decimal `json:"final_salary"`
	NominalPerDaySalary decimal.Decimal `json:"nominal_per_day_salary"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}
