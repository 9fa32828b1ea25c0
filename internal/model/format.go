package model

import (
	"strings"
	"time"
)

// Formatting contract applied to every event (and pending event) returned
// to a client: dates reduce to a calendar-date-only representation and the
// registration count is a non-negative integer.

// dateLayouts are the representations accepted on input, in the order they
// are tried.  The stored form is always the first layout.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// NormalizeDate reduces a date string to YYYY-MM-DD.  Unparseable values
// longer than ten characters are truncated rather than dropped, matching
// the catalog's lenient output behavior; short garbage is returned as-is.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// ValidDate reports whether s parses as one of the accepted date layouts.
func ValidDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// CoerceCount clamps a computed registration count to a non-negative
// integer, defaulting to 0.
func CoerceCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Now returns the canonical stored timestamp form: UTC RFC3339.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
