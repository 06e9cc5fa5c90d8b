package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

var defaultLocation = time.UTC

// Booking dialogue grammars: dates are YYYY-MM-DD with a 20xx year, times are
// HH:MM on a 24-hour clock. Shapes that pass the regexp but name an
// impossible calendar day (2025-02-31) are rejected by the parse round-trip.
var (
	datePattern  = regexp.MustCompile(`^20\d{2}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)
)

// ResolveLocation returns the shop's location with UTC fallback.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return defaultLocation, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return defaultLocation, true
	}
	return loc, false
}

// ValidDate reports whether value is a real calendar date in YYYY-MM-DD form.
func ValidDate(value string) bool {
	if !datePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ValidClock reports whether value is a 24-hour HH:MM clock time.
func ValidClock(value string) bool {
	return clockPattern.MatchString(value)
}

// Combine parses a date and clock pair into an instant in the provided location.
func Combine(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = defaultLocation
	}
	if !ValidDate(date) {
		return time.Time{}, fmt.Errorf("invalid date: %s", date)
	}
	if !ValidClock(clock) {
		return time.Time{}, fmt.Errorf("invalid time: %s", clock)
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse datetime %s %s: %w", date, clock, err)
	}
	return t, nil
}

// ParseClock parses an HH:MM string into hour and minute components.
func ParseClock(value string) (hour, minute int, err error) {
	if !ValidClock(value) {
		return 0, 0, fmt.Errorf("invalid time: %s", value)
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to parse time %s: %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}
