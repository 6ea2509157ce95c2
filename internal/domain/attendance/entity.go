package attendance

import (
	"time"
)

// Event is one append-only punch record. Rows are never updated or deleted;
// IN/OUT pairing is derived from insertion order per (worker, date), not
// stored.
type Event struct {
	ID             string
	Tenant         string
	WorkerID       string
	RFID           string
	DepartmentID   string
	DepartmentName string

	// Date is the tenant-local calendar-day key (YYYY-MM-DD), the grouping
	// key for pairing. Time is a 12-hour wall-clock string used only for
	// same-day ordering and duration math. CreatedAt is the real timestamp
	// and the only value comparable across days.
	Date string
	Time string

	Presence         bool
	IsMissedOutPunch bool
	CreatedAt        time.Time

	// Joined for display
	WorkerName *string
}
