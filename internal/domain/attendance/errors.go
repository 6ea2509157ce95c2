package attendance

import "errors"

// Attendance domain errors
var (
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed punch-in area")
	ErrLocationRequired     = errors.New("location is required to punch in at this workplace")
)
