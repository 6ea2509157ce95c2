package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("attendance settings not found for this tenant")
	ErrGeofenceLocked   = errors.New("geofence location is locked and cannot be changed")
)
