package normalization

import (
	"fmt"
	"strings"
	"time"
)

// Layouts seen across the export systems. Violation exports carry full
// timestamps, inventory exports anything from ISO dates to dotted Korean
// short forms.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"20060102",
}

// ParseTimestamp parses a violation timestamp, preserving time of day.
// Hour-of-day is an analysis dimension so it must survive normalization.
func ParseTimestamp(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", raw)
}

// ParseDate parses an inventory date, discarding any time-of-day the
// source carried. Install dates are compared as calendar dates only.
func ParseDate(raw string) (time.Time, error) {
	ts, err := ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(ts), nil
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

// FormatDate renders a calendar date the way it is stored and reported.
func FormatDate(ts time.Time) string {
	return ts.Format("2006-01-02")
}
