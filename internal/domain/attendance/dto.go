package attendance

import (
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

// PunchRequest is the punch intake contract. Presence is optional: when nil
// the transition resolver decides IN vs OUT from the worker's last event.
// Coordinates are required only when the tenant has geofencing enabled.
type PunchRequest struct {
	RFID      string   `json:"rfid"`
	Presence  *bool    `json:"presence,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	EventID           string `json:"event_id"`
	WorkerID          string `json:"worker_id"`
	WorkerName        string `json:"worker_name"`
	DepartmentName    string `json:"department_name"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Presence          bool   `json:"presence"`
	CorrectionApplied bool   `json:"correction_applied"`
}

// ReportFilter selects events for the per-day report.
type ReportFilter struct {
	WorkerID  string `json:"worker_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if f.StartDate != "" {
		if _, valid := validator.IsValidDate(f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != "" {
		if _, valid := validator.IsValidDate(f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PunchMark is one in-time or out-time on a day report. IsMissed marks
// synthesized or anomalous out punches. Time is empty on the display-only
// trailing marker for a day that ends on an open IN.
type PunchMark struct {
	Time     string `json:"time"`
	IsMissed bool   `json:"is_missed"`
}

// DaySummary is the report-ready view of one worker-day.
type DaySummary struct {
	Date          string      `json:"date"`
	InTimes       []PunchMark `json:"in_times"`
	OutTimes      []PunchMark `json:"out_times"`
	WorkedSeconds float64     `json:"worked_seconds"`
	Worked        string      `json:"worked"` // HH:MM:SS
}
