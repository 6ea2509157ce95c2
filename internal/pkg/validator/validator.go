package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RFID cards encode 6-20 alphanumeric characters.
var rfidRegex = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)

func IsValidRFID(rfid string) bool {
	return rfidRegex.MatchString(rfid)
}

// Tenant subdomains: 3-50 chars, lowercase alphanumeric plus hyphen.
var tenantRegex = regexp.MustCompile(`^[a-z0-9-]{3,50}$`)

func IsValidTenant(tenant string) bool {
	return tenantRegex.MatchString(tenant)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsPositiveAmount reports whether d is a strictly positive monetary amount.
func IsPositiveAmount(d decimal.Decimal) bool {
	return d.IsPositive()
}

// IsValidLatitude / IsValidLongitude bound raw coordinates.
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
