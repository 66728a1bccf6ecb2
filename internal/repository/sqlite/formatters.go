package sqlite

import (
	"time"
)

// TimestampLayout is a fixed-width RFC3339 layout. Stored in UTC it sorts
// lexically in chronological order, which ORDER BY and MAX() rely on.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value in UTC for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimeFromDB parses a timestamp written by FormatTimeForDB
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// NormalizeTime drops monotonic clock data and sub-nanosecond location details
// so an in-memory value compares equal to the one read back from the database.
func NormalizeTime(t time.Time) (time.Time, error) {
	return ParseTimeFromDB(FormatTimeForDB(t))
}
