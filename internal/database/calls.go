package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// CallRecord is one persisted call session.
type CallRecord struct {
	ID        string     `json:"id"`
	CallerRef string     `json:"caller_ref"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Escalated bool       `json:"escalated"`
	SlotsJSON string     `json:"slots_json,omitempty"`
}

// CallStep is one audited dialogue step.
type CallStep struct {
	ID        int64     `json:"id"`
	CallID    string    `json:"call_id"`
	Step      string    `json:"step"`
	Input     string    `json:"input,omitempty"`
	Output    string    `json:"output,omitempty"`
	Outcome   string    `json:"outcome"`
	ExtraJSON string    `json:"extra_json,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StartCall records the beginning of a call session.
func (d *DB) StartCall(callID, callerRef string) error {
	_, err := d.Exec(`
		INSERT INTO calls (id, caller_ref, started_at) VALUES (?, ?, ?)
	`, callID, callerRef, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to start call record: %w", err)
	}
	return nil
}

// EndCall closes a call record with its final slots and escalation state.
func (d *DB) EndCall(callID string, escalated bool, slots any) error {
	slotsJSON := ""
	if slots != nil {
		if raw, err := json.Marshal(slots); err == nil {
			slotsJSON = string(raw)
		}
	}

	_, err := d.Exec(`
		UPDATE calls SET ended_at = ?, escalated = ?, slots_json = ? WHERE id = ?
	`, time.Now().UTC(), escalated, slotsJSON, callID)
	if err != nil {
		return fmt.Errorf("failed to end call record: %w", err)
	}
	return nil
}

// GetCall retrieves a call record by ID.
func (d *DB) GetCall(callID string) (*CallRecord, error) {
	var rec CallRecord
	var endedAt sql.NullTime
	var slotsJSON sql.NullString

	err := d.QueryRow(`
		SELECT id, caller_ref, started_at, ended_at, escalated, slots_json
		FROM calls WHERE id = ?
	`, callID).Scan(&rec.ID, &rec.CallerRef, &rec.StartedAt, &endedAt, &rec.Escalated, &slotsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to get call record: %w", err)
	}

	if endedAt.Valid {
		rec.EndedAt = &endedAt.Time
	}
	if slotsJSON.Valid {
		rec.SlotsJSON = slotsJSON.String
	}
	return &rec, nil
}

// RecordStep appends a dialogue step to the audit trail. Callers treat the
// audit log as fire-and-forget; a write failure never interrupts a call.
func (d *DB) RecordStep(callID, step, input, output, outcome string, extra map[string]any) error {
	if outcome == "" {
		outcome = "ok"
	}
	extraJSON := ""
	if len(extra) > 0 {
		if raw, err := json.Marshal(extra); err == nil {
			extraJSON = string(raw)
		}
	}

	_, err := d.Exec(`
		INSERT INTO call_steps (call_id, step, input, output, outcome, extra_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, callID, step, input, output, outcome, extraJSON)
	if err != nil {
		return fmt.Errorf("failed to record call step: %w", err)
	}
	return nil
}

// GetCallSteps returns the audit trail for a call in chronological order.
func (d *DB) GetCallSteps(callID string) ([]CallStep, error) {
	rows, err := d.Query(`
		SELECT id, call_id, step, input, output, outcome, extra_json, created_at
		FROM call_steps WHERE call_id = ? ORDER BY id
	`, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call steps: %w", err)
	}
	defer rows.Close()

	var steps []CallStep
	for rows.Next() {
		var s CallStep
		var input, output, extraJSON sql.NullString
		if err := rows.Scan(&s.ID, &s.CallID, &s.Step, &input, &output, &s.Outcome, &extraJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan call step: %w", err)
		}
		s.Input = input.String
		s.Output = output.String
		s.ExtraJSON = extraJSON.String
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate call steps: %w", err)
	}

	return steps, nil
}
