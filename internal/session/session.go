package session

import (
	"time"

	"github.com/google/uuid"
)

// Slot names used across the booking dialogue.
const (
	SlotService = "service"
	SlotDate    = "date"
	SlotTime    = "time"
)

// Slots is the fixed schema of booking parameters collected during a call.
// The slot set is closed, so named fields are used instead of an open map.
type Slots struct {
	Service         string `json:"service,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// Get returns the value of a named string slot.
func (s Slots) Get(name string) string {
	switch name {
	case SlotService:
		return s.Service
	case SlotDate:
		return s.Date
	case SlotTime:
		return s.Time
	}
	return ""
}

// Complete reports whether all three required slots are filled.
func (s Slots) Complete() bool {
	return s.Service != "" && s.Date != "" && s.Time != ""
}

// Missing returns the required slots that are still empty, in dialogue order.
func (s Slots) Missing() []string {
	var missing []string
	for _, name := range []string{SlotService, SlotDate, SlotTime} {
		if s.Get(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Step is one entry in a session's append-only dialogue history.
type Step struct {
	Name      string         `json:"step"`
	Input     string         `json:"input,omitempty"`
	Output    string         `json:"output,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Session is one call: the caller reference, the booking slots gathered so
// far, the dialogue history, and the escalation flag. The agent is the only
// writer; history is audit-only and never read back by the dialogue logic.
type Session struct {
	ID        string
	CallerRef string
	CreatedAt time.Time
	UpdatedAt time.Time
	Slots     Slots
	History   []Step
	Escalated bool
}

// New creates a session for a caller with a generated ID.
func New(callerRef string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CallerRef: callerRef,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetSlot stores a value for one of the required string slots.
func (s *Session) SetSlot(name, value string) {
	switch name {
	case SlotService:
		s.Slots.Service = value
	case SlotDate:
		s.Slots.Date = value
	case SlotTime:
		s.Slots.Time = value
	}
	s.touch()
}

// SetDuration stores the resolved service duration.
func (s *Session) SetDuration(minutes int) {
	s.Slots.DurationMinutes = minutes
	s.touch()
}

// AddHistory appends a dialogue step to the session history.
func (s *Session) AddHistory(step, input, output string, extra map[string]any) {
	s.History = append(s.History, Step{
		Name:      step,
		Input:     input,
		Output:    output,
		Extra:     extra,
		Timestamp: time.Now().UTC(),
	})
	s.touch()
}

// Escalate marks the session as handed off. The flag is one-way: once set it
// is never cleared for the remainder of the call.
func (s *Session) Escalate() {
	s.Escalated = true
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
