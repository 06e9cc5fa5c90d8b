package database

import (
	"fmt"
)

// RecordUsage appends a classifier token usage event for a call.
func (d *DB) RecordUsage(callID string, tokens int) error {
	_, err := d.Exec(`
		INSERT INTO usage_events (call_id, tokens) VALUES (?, ?)
	`, callID, tokens)
	if err != nil {
		return fmt.Errorf("failed to record usage event: %w", err)
	}
	return nil
}

// TotalTokens returns the all-time token count across calls.
func (d *DB) TotalTokens() (int64, error) {
	var total int64
	err := d.QueryRow(`SELECT COALESCE(SUM(tokens), 0) FROM usage_events`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum usage events: %w", err)
	}
	return total, nil
}
