package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TimestampLayout is the upstream game timestamp once the zone marker is trimmed.
const TimestampLayout = "2006-01-02T15:04:05"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// ParseTimestamp parses an upstream timestamp such as 2016-10-12T23:00:00Z.
// The trailing zone marker is dropped and the value is read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(TimestampLayout, strings.TrimSuffix(value, "Z"))
}
