package utils

import (
	"time"

	"github.com/yukikurage/todo-cli/internal/constants"
)

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constants.DateLayout, value)
}

// IsValidDate reports whether value parses with ParseDate.
func IsValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// DateOf drops the clock part of t, keeping its calendar day in t's location,
// and returns that day at midnight UTC so it compares with ParseDate results.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}
