package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deduction is one append-only repayment entry against an advance.
type Deduction struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// Advance is a cash advance issued against a worker's salary.
// Invariant: RemainingAmount = Amount - sum(Deductions[].Amount).
// Deductions are never edited or removed after creation.
type Advance struct {
	ID              string
	Tenant          string
	WorkerID        string
	Amount          decimal.Decimal
	RemainingAmount decimal.Decimal
	Deductions      []Deduction
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined for display
	WorkerName *string
}
