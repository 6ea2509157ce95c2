package salary

import "errors"

var (
	// ErrMonthlyWorkingDaysNotSet fails the whole report: the working-day
	// count is a hard input, never defaulted to zero.
	ErrMonthlyWorkingDaysNotSet = errors.New("monthly working days are not configured for this month")

	ErrNoWorkers = errors.New("no workers found for this tenant")
)
