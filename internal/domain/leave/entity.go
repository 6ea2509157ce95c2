package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type LeaveType string

const (
	// TypePermission is a partial-day absence with minute-granularity start
	// and end times; approval deducts a prorated amount instead of whole
	// days.
	TypePermission LeaveType = "Permission"
	TypeCasual     LeaveType = "Casual"
	TypeSick       LeaveType = "Sick"
	TypeUnpaid     LeaveType = "Unpaid"
)

type Leave struct {
	ID        string
	Tenant    string
	WorkerID  string
	Type      LeaveType
	Status    Status
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	TotalDays int

	// Permission leaves only: 12-hour wall-clock bounds within one day.
	StartTime *string
	EndTime   *string

	Reason string

	// DeductedAmount is set on approval for auditability.
	DeductedAmount *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for display
	WorkerName *string
}
