package schedule

import (
	"fmt"
	"time"

	"github.com/superior-auto/frontdesk/internal/database"
)

// Source is the slice of the appointment store the engine needs.
type Source interface {
	QueryOverlapping(start, end time.Time) ([]database.Appointment, error)
}

// Clock is a wall-clock time of day bounding the business window.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) at(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Engine answers conflict and availability questions against the store.
// Appointment volume is low, so checks are linear scans via the overlap query.
type Engine struct {
	source Source
}

func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// Overlaps reports whether two half-open [start, end) intervals overlap.
// Touching endpoints do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict returns the stored appointments overlapping the requested slot.
func (e *Engine) HasConflict(start time.Time, durationMinutes int) ([]database.Appointment, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	conflicts, err := e.source.QueryOverlapping(start, end)
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	return conflicts, nil
}

// SuggestNextSlot finds the first conflict-free slot at or after the desired
// start, rounded down to the booking interval, scanning day by day inside the
// business window for up to maxLookaheadDays. A candidate must end by the
// business close. Returns false when the whole window is booked out; the
// caller treats that as a terminal outcome, not an error.
func (e *Engine) SuggestNextSlot(desired time.Time, durationMinutes int, open, close Clock, intervalMinutes, maxLookaheadDays int) (time.Time, bool, error) {
	if intervalMinutes <= 0 || durationMinutes <= 0 {
		return time.Time{}, false, fmt.Errorf("interval and duration must be positive")
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(intervalMinutes) * time.Minute
	rounded := roundDown(desired, intervalMinutes)
	firstDay := time.Date(rounded.Year(), rounded.Month(), rounded.Day(), 0, 0, 0, 0, rounded.Location())

	for dayOffset := 0; dayOffset <= maxLookaheadDays; dayOffset++ {
		day := firstDay.AddDate(0, 0, dayOffset)
		candidate := open.at(day)
		dayClose := close.at(day)

		// Never suggest earlier than what was asked on the requested day.
		if dayOffset == 0 && rounded.After(candidate) {
			candidate = rounded
		}

		for !candidate.Add(duration).After(dayClose) {
			conflicts, err := e.source.QueryOverlapping(candidate, candidate.Add(duration))
			if err != nil {
				return time.Time{}, false, fmt.Errorf("slot search failed: %w", err)
			}
			if len(conflicts) == 0 {
				return candidate, true, nil
			}
			candidate = candidate.Add(step)
		}
	}

	return time.Time{}, false, nil
}

func roundDown(t time.Time, intervalMinutes int) time.Time {
	minutes := t.Hour()*60 + t.Minute()
	rounded := (minutes / intervalMinutes) * intervalMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), rounded/60, rounded%60, 0, 0, t.Location())
}
