package utils

import "time"

// FormatTimestamp renders a timestamp for API responses (RFC 3339).
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
