package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/superior-auto/frontdesk/internal/channel"
	"github.com/superior-auto/frontdesk/internal/database"
	"github.com/superior-auto/frontdesk/internal/schedule"
	"github.com/superior-auto/frontdesk/internal/session"
	"github.com/superior-auto/frontdesk/internal/timeutil"
)

const (
	reserveMaxRetries      = 3
	defaultDurationMinutes = 30
)

// book runs the post-confirmation pipeline: conflict check, alternative
// suggestion if needed, then the store commit with side effects.
func (r *Receptionist) book(ctx context.Context, sess *session.Session, ch channel.Channel) string {
	desired, err := r.resolveDesired(sess)
	if err != nil {
		return r.escalate(sess, ch, "parse_error", "", map[string]any{"error": err.Error()})
	}

	duration := defaultDurationMinutes
	if svc, ok := r.shop.FindService(sess.Slots.Service); ok {
		duration = svc.DurationMinutes
	}
	sess.SetDuration(duration)

	conflicts, err := r.engine.HasConflict(desired, duration)
	if err != nil {
		r.auditOutcome(sess, "conflict_check_error", "", "", "error", map[string]any{"error": err.Error()})
		return r.escalate(sess, ch, "conflict_check_escalation", finalizeErrPrefix, nil)
	}
	if len(conflicts) > 0 {
		next, ok := r.resolveConflict(sess, ch, desired, duration, len(conflicts))
		if !ok {
			return EscalationMessage
		}
		desired = next
	}

	appointment := &database.Appointment{
		CallID:      sess.ID,
		Title:       sess.Slots.Service + " for " + sess.CallerRef,
		Description: "Booked service: " + sess.Slots.Service,
		StartTime:   desired,
		EndTime:     desired.Add(time.Duration(duration) * time.Minute),
	}
	if err := r.reserve(appointment); err != nil {
		return r.escalate(sess, ch, "finalization_error", finalizeErrPrefix, map[string]any{"error": err.Error()})
	}

	confirmation := fmt.Sprintf("Appointment confirmed for %s on %s at %s.",
		sess.Slots.Service, sess.Slots.Date, sess.Slots.Time)
	ch.Prompt(confirmation)
	r.audit(sess, "booking_confirmed", "", confirmation, map[string]any{
		"service":  sess.Slots.Service,
		"datetime": desired.Format(time.RFC3339),
	})

	r.notifier.NotifyBooked(ctx, appointment)
	go func() {
		if err := r.mirror.MirrorAppointment(context.Background(), appointment); err != nil {
			log.Printf("Failed to mirror appointment to calendar: %v", err)
		}
	}()

	return confirmation
}

// resolveConflict announces the conflict, offers the next free slot and asks
// the caller to accept it. Acceptance overwrites the date and time slots.
// Rejection, or no slot within the lookahead window, escalates.
func (r *Receptionist) resolveConflict(sess *session.Session, ch channel.Channel, desired time.Time, duration, conflictCount int) (time.Time, bool) {
	ch.Prompt(ConflictMessage)
	r.audit(sess, "conflict_detected", "", ConflictMessage, map[string]any{"conflicts": conflictCount})

	open, close, err := r.businessWindow()
	if err != nil {
		r.escalate(sess, ch, "business_hours_invalid", finalizeErrPrefix, map[string]any{"error": err.Error()})
		return time.Time{}, false
	}

	suggestion, found, err := r.engine.SuggestNextSlot(desired, duration, open, close, r.shop.IntervalMinutes, r.shop.LookaheadDays)
	if err != nil {
		r.escalate(sess, ch, "suggestion_error", finalizeErrPrefix, map[string]any{"error": err.Error()})
		return time.Time{}, false
	}
	if !found {
		r.escalate(sess, ch, "no_alternatives", "", nil)
		return time.Time{}, false
	}

	readable := suggestion.Format("2006-01-02 15:04")
	ch.Prompt("The next available slot is " + readable + ". Do you want that instead? (yes/no)")
	accept, err := ch.Collect("> ")
	if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(accept)), "y") {
		r.escalate(sess, ch, "user_rejected_suggestion", "", nil)
		return time.Time{}, false
	}

	sess.SetSlot(session.SlotDate, suggestion.Format("2006-01-02"))
	sess.SetSlot(session.SlotTime, suggestion.Format("15:04"))
	r.audit(sess, "accepted_suggestion", accept, readable, nil)
	return suggestion, true
}

func (r *Receptionist) businessWindow() (schedule.Clock, schedule.Clock, error) {
	oh, om, err := timeutil.ParseClock(r.shop.Hours.Open)
	if err != nil {
		return schedule.Clock{}, schedule.Clock{}, err
	}
	ch, cm, err := timeutil.ParseClock(r.shop.Hours.Close)
	if err != nil {
		return schedule.Clock{}, schedule.Clock{}, err
	}
	return schedule.Clock{Hour: oh, Minute: om}, schedule.Clock{Hour: ch, Minute: cm}, nil
}

// reserve writes the appointment, retrying transient store contention.
// A conflict detected during the write's re-validation is permanent; the
// slot was taken by a concurrent call between check and commit.
func (r *Receptionist) reserve(a *database.Appointment) error {
	op := func() error {
		_, err := r.db.Reserve(a)
		if err != nil && !database.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), reserveMaxRetries))
}
