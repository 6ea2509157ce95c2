// Package timeutil is the single place calendar-day keys and wall-clock
// strings are derived. Attendance rows group by a tenant-local day key and
// order by a 12-hour wall clock within the day; every component must agree on
// how those are computed, so none of them parse dates on their own.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DayKeyLayout    = "2006-01-02"
	MonthKeyLayout  = "2006-01"
	wallClockLayout = "03:04 PM"
)

// dayKeyLayouts are the formats historical rows have been seen in. New rows
// are always written in DayKeyLayout.
var dayKeyLayouts = []string{
	DayKeyLayout,
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
}

// DayKey returns the canonical calendar-day key for t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// NormalizeDayKey canonicalizes a stored date string to YYYY-MM-DD.
func NormalizeDayKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dayKeyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DayKeyLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format: %q", s)
}

// WallClock formats t in loc as a 12-hour clock string.
func WallClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(wallClockLayout)
}

// ParseWallClock parses a 12-hour clock string into minutes since midnight.
// Seconds are accepted but attendance rows only carry minute precision.
func ParseWallClock(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range []string{wallClockLayout, "03:04:05 PM", "3:04 PM", "3:04:05 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized wall-clock format: %q", s)
}

// FormatDuration renders a duration in seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// MonthKey returns the YYYY-MM key used by the monthly working-days config.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MonthRange returns the inclusive day-key bounds of a calendar month.
func MonthRange(year int, month time.Month) (startKey, endKey string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format(DayKeyLayout), end.Format(DayKeyLayout)
}

// InMonth reports whether t falls within the given calendar month in loc.
func InMonth(t time.Time, year int, month time.Month, loc *time.Location) bool {
	local := t.In(loc)
	return local.Year() == year && local.Month() == month
}

// BeforeMonth reports whether t falls strictly before the given month in loc.
func BeforeMonth(t time.Time, year int, month time.Month, loc *time.Location) bool {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return t.In(loc).Before(start)
}
