package util

import "time"

// TimestampLayout renders UTC instants at second precision, e.g. 2024-03-01T09:30:00Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
