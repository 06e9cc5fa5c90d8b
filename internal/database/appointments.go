package database

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ErrSlotTaken is returned by Reserve when the re-validation under the write
// lock finds an overlapping appointment. Callers must treat it as a detected
// race, never as a transient failure.
var ErrSlotTaken = errors.New("appointment slot already taken")

// appointmentsMu serializes the check-then-append critical section across
// concurrent call sessions sharing one store.
var appointmentsMu sync.Mutex

// Appointment is a committed entry in the shop's appointment book.
// Start and End form a half-open [start, end) interval.
type Appointment struct {
	ID          int64     `json:"id"`
	CallID      string    `json:"call_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// QueryOverlapping returns appointments whose [start, end) interval overlaps
// the given half-open window. Touching endpoints do not overlap.
func (d *DB) QueryOverlapping(start, end time.Time) ([]Appointment, error) {
	rows, err := d.Query(`
		SELECT id, call_id, title, description, start_time, end_time, created_at
		FROM appointments
		WHERE start_time < ? AND end_time > ?
		ORDER BY start_time
	`, end.UTC(), start.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.CallID, &a.Title, &a.Description, &a.StartTime, &a.EndTime, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return appointments, nil
}

// Append inserts an appointment without conflict checking. Most callers want
// Reserve instead; Append exists for imports and tests.
func (d *DB) Append(a *Appointment) error {
	result, err := d.Exec(`
		INSERT INTO appointments (call_id, title, description, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
	`, a.CallID, a.Title, a.Description, a.StartTime.UTC(), a.EndTime.UTC())
	if err != nil {
		return fmt.Errorf("failed to append appointment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get appointment id: %w", err)
	}
	a.ID = id
	return nil
}

// Reserve re-validates the slot and appends the appointment as one critical
// section. A conflict found between the caller's earlier check and this write
// returns the overlapping appointments together with ErrSlotTaken.
func (d *DB) Reserve(a *Appointment) ([]Appointment, error) {
	appointmentsMu.Lock()
	defer appointmentsMu.Unlock()

	conflicts, err := d.QueryOverlapping(a.StartTime, a.EndTime)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, ErrSlotTaken
	}

	if err := d.Append(a); err != nil {
		return nil, err
	}
	return nil, nil
}

// IsTransient reports whether a store error is worth retrying. SQLite
// busy/locked contention clears on its own; everything else is fatal.
func IsTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
