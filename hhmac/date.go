package hhmac

import (
	"fmt"
	"time"
)

// DateLayout is the timestamp layout used in the canonical request and in
// the date field of the Authorization header: ISO 8601 in UTC with second
// precision.
const DateLayout = "2006-01-02T15:04:05Z"

// FormatDate formats t as YYYY-MM-DDTHH:MM:SSZ in UTC. Fractional seconds
// are truncated, not rounded.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a timestamp produced by FormatDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrMalformedHeader, s)
	}

	return t, nil
}
