package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type Worker struct {
	ID             string
	Tenant         string
	Name           string
	RFID           string
	DepartmentID   string
	DepartmentName string

	// Salary is the base monthly salary. FinalSalary is the running adjusted
	// balance (advances and approved leaves deduct from it).
	// NominalPerDaySalary is Salary/30, fixed at create/update time; reports
	// compute their own per-day figure from the configured working days.
	Salary              decimal.Decimal
	FinalSalary         decimal.Decimal
	NominalPerDaySalary decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
