package settings

import (
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	Timer              *AttendanceTimer `json:"timer,omitempty"`
	MonthlyWorkingDays map[string]int   `json:"monthly_working_days,omitempty"`
	Geofence           *Geofence        `json:"geofence,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timer != nil && r.Timer.GlobalHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "timer.global_hours",
			Message: "global_hours must be positive",
		})
	}

	if r.Timer != nil {
		for _, o := range r.Timer.Overrides {
			if validator.IsEmpty(o.WorkerID) || o.RequiredHours <= 0 {
				errs = append(errs, validator.ValidationError{
					Field:   "timer.overrides",
					Message: "each override needs a worker_id and positive required_hours",
				})
				break
			}
		}
	}

	for month, days := range r.MonthlyWorkingDays {
		if _, valid := validator.IsValidDate(month + "-01"); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_working_days",
				Message: "keys must be in YYYY-MM format",
			})
			break
		}
		if days < 0 || days > 31 {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_working_days",
				Message: "working-day counts must be between 0 and 31",
			})
			break
		}
	}

	if r.Geofence != nil {
		if !validator.IsValidLatitude(r.Geofence.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "geofence.latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.Geofence.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "geofence.longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
		if r.Geofence.Enabled && r.Geofence.RadiusMeters <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "geofence.radius_meters",
				Message: "radius_meters must be positive when geofencing is enabled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	Tenant             string          `json:"tenant"`
	Timer              AttendanceTimer `json:"timer"`
	MonthlyWorkingDays map[string]int  `json:"monthly_working_days"`
	Geofence           Geofence        `json:"geofence"`
	DailyReportSent    bool            `json:"daily_report_sent"`
}
