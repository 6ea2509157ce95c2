package settings

import (
	"time"
)

// TimerOverride gives one worker a required-hours value different from the
// tenant default.
type TimerOverride struct {
	WorkerID      string  `json:"worker_id"`
	RequiredHours float64 `json:"required_hours"`
}

// AttendanceTimer configures required hours per day.
type AttendanceTimer struct {
	GlobalHours float64         `json:"global_hours"`
	Overrides   []TimerOverride `json:"overrides,omitempty"`
}

// Geofence is the per-tenant allowed punch-in zone. Locked prevents admins
// from moving the zone through the API.
type Geofence struct {
	Enabled      bool    `json:"enabled"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Locked       bool    `json:"locked"`
}

// Settings is the single per-tenant attendance configuration row.
// MonthlyWorkingDays maps "YYYY-MM" to that month's working-day count and
// must be populated before a salary report for the month can be produced.
type Settings struct {
	ID                 string
	Tenant             string
	Timer              AttendanceTimer
	MonthlyWorkingDays map[string]int
	Geofence           Geofence
	DailyReportSent    bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RequiredHoursFor returns the per-worker override when configured, else the
// tenant default.
func (s Settings) RequiredHoursFor(workerID string) float64 {
	for _, o := range s.Timer.Overrides {
		if o.WorkerID == workerID {
			return o.RequiredHours
		}
	}
	return s.Timer.GlobalHours
}
