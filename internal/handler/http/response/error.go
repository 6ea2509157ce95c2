package response

import (
	"errors"
	"net/http"

	"github.com/stafftrack/workforce-backend-go/internal/domain/advance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/department"
	"github.com/stafftrack/workforce-backend-go/internal/domain/leave"
	"github.com/stafftrack/workforce-backend-go/internal/domain/salary"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "Punch location is outside the allowed area")
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location coordinates are required to punch", nil)

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrRFIDExists):
		Conflict(w, "RFID already registered to another worker")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentExists):
		Conflict(w, "Department with this name already exists")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Attendance settings not configured for this tenant")
	case errors.Is(err, settings.ErrGeofenceLocked):
		Conflict(w, "Geofence location is locked and cannot be changed")

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrDeductionExceedsBalance):
		BadRequest(w, "Deduction amount exceeds the remaining advance balance", nil)
	case errors.Is(err, advance.ErrAdvanceAlreadySettled):
		Conflict(w, "Advance has already been fully repaid")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidPermissionTime):
		BadRequest(w, "Permission leave times are invalid", nil)

	// Salary domain errors
	case errors.Is(err, salary.ErrMonthlyWorkingDaysNotSet):
		BadRequest(w, "Working days are not configured for this month", nil)
	case errors.Is(err, salary.ErrNoWorkers):
		NotFound(w, "No workers found for this tenant")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
