package agent

import (
	"context"
	"log"
	"time"

	"github.com/superior-auto/frontdesk/internal/agent/intents"
	"github.com/superior-auto/frontdesk/internal/agent/slots"
	"github.com/superior-auto/frontdesk/internal/channel"
	"github.com/superior-auto/frontdesk/internal/claude"
	"github.com/superior-auto/frontdesk/internal/config"
	"github.com/superior-auto/frontdesk/internal/database"
	"github.com/superior-auto/frontdesk/internal/gcal"
	"github.com/superior-auto/frontdesk/internal/notify"
	"github.com/superior-auto/frontdesk/internal/schedule"
	"github.com/superior-auto/frontdesk/internal/session"
	"github.com/superior-auto/frontdesk/internal/timeutil"
	"github.com/superior-auto/frontdesk/internal/usage"
)

const defaultMaxSlotAttempts = 2

// Classifier is the fallback oracle consulted when the deterministic
// confirmation pass is inconclusive. Satisfied by *claude.Client.
type Classifier interface {
	Classify(ctx context.Context, messages []claude.Message) (*claude.Reply, error)
	IsConfigured() bool
}

// Receptionist drives one caller interaction at a time: intent routing,
// slot filling, confirmation, conflict resolution and booking commit.
// All collaborators are injected; nothing here reads ambient state.
type Receptionist struct {
	shop       *config.Shop
	db         *database.DB
	engine     *schedule.Engine
	router     *intents.KeywordRouter
	guard      *usage.Guard
	classifier Classifier
	notifier   *notify.Service
	mirror     *gcal.Mirror
	loc        *time.Location

	maxSlotAttempts int
}

// New wires a receptionist from its collaborators. notifier and mirror may
// be nil; the classifier may be unconfigured, in which case unclear
// confirmations escalate without a fallback call.
func New(
	shop *config.Shop,
	db *database.DB,
	engine *schedule.Engine,
	guard *usage.Guard,
	classifier Classifier,
	notifier *notify.Service,
	mirror *gcal.Mirror,
	loc *time.Location,
) *Receptionist {
	return &Receptionist{
		shop:            shop,
		db:              db,
		engine:          engine,
		router:          intents.NewKeywordRouter(),
		guard:           guard,
		classifier:      classifier,
		notifier:        notifier,
		mirror:          mirror,
		loc:             loc,
		maxSlotAttempts: defaultMaxSlotAttempts,
	}
}

// SetMaxSlotAttempts overrides the per-slot clarification budget.
func (r *Receptionist) SetMaxSlotAttempts(n int) {
	if n > 0 {
		r.maxSlotAttempts = n
	}
}

// Greeting opens a call.
func (r *Receptionist) Greeting() string {
	return "Hello from " + r.shop.ShopName + "! How can I help today?"
}

// ProcessInteraction handles one caller utterance end to end and returns the
// final reply for this turn. Terminal failures escalate: the fixed handoff
// message is spoken, the session is flagged, and the message is returned.
func (r *Receptionist) ProcessInteraction(ctx context.Context, input string, sess *session.Session, ch channel.Channel) string {
	// Escalation is one-way terminal: a handed-off session only ever repeats
	// the handoff message, it never re-enters the booking pipeline.
	if sess.Escalated {
		ch.Prompt(EscalationMessage)
		r.audit(sess, "escalated_session_input", input, EscalationMessage, nil)
		return EscalationMessage
	}

	r.audit(sess, "user_input", input, "", nil)

	routed := r.router.Route(input)
	r.audit(sess, "intent_classified", input, string(routed.Intent), nil)

	switch routed.Intent {
	case intents.IntentPricing, intents.IntentInformation:
		return r.handleInfo(input, sess, ch)
	case intents.IntentBooking:
		// fall through to the slot pipeline
	default:
		ch.Prompt(OffDomainMessage)
		r.audit(sess, "fallback", "", OffDomainMessage, nil)
		return OffDomainMessage
	}

	extracted := slots.Extract(input, r.shop.ServiceNames(), sess.Slots, r.matcherConfig())
	r.applyExtracted(sess, extracted)

	if !r.clarifySlots(sess, ch) {
		return EscalationMessage
	}

	paraphrase := "Just to confirm: you want a " + sess.Slots.Service +
		" on " + sess.Slots.Date + " at " + sess.Slots.Time + ". Is that correct?"

	outcome := r.confirm(ctx, paraphrase, sess, ch)
	switch outcome {
	case confirmRejected:
		// Slots are kept so the caller can correct a single detail next turn.
		ch.Prompt(RetryMessage)
		r.audit(sess, "confirmation_rejected", "", RetryMessage, nil)
		return RetryMessage
	case confirmAccepted:
		return r.book(ctx, sess, ch)
	default:
		return EscalationMessage
	}
}

func (r *Receptionist) matcherConfig() slots.MatcherConfig {
	return slots.MatcherConfig{
		Threshold:       r.shop.Matcher.Threshold,
		TokenWeight:     r.shop.Matcher.TokenWeight,
		CharacterWeight: r.shop.Matcher.CharacterWeight,
	}
}

func (r *Receptionist) applyExtracted(sess *session.Session, extracted session.Slots) {
	for _, name := range []string{session.SlotService, session.SlotDate, session.SlotTime} {
		if v := extracted.Get(name); v != "" && sess.Slots.Get(name) == "" {
			sess.SetSlot(name, v)
			r.audit(sess, "extracted_"+name, "", v, nil)
		}
	}
}

// resolveDesired combines the confirmed date and time slots in the shop zone.
// Upstream validation should make failure unreachable; it escalates anyway.
func (r *Receptionist) resolveDesired(sess *session.Session) (time.Time, error) {
	return timeutil.Combine(sess.Slots.Date, sess.Slots.Time, r.loc)
}

// escalate flags the session, speaks the handoff message with an optional
// reason prefix and records the step. Returns EscalationMessage for callers
// that bubble the reply up.
func (r *Receptionist) escalate(sess *session.Session, ch channel.Channel, step, prefix string, extra map[string]any) string {
	sess.Escalate()
	ch.Prompt(prefix + EscalationMessage)
	r.auditOutcome(sess, step, "", EscalationMessage, "escalated", extra)
	return EscalationMessage
}

func (r *Receptionist) audit(sess *session.Session, step, input, output string, extra map[string]any) {
	r.auditOutcome(sess, step, input, output, "ok", extra)
}

func (r *Receptionist) auditOutcome(sess *session.Session, step, input, output, outcome string, extra map[string]any) {
	sess.AddHistory(step, input, output, extra)
	if err := r.db.RecordStep(sess.ID, step, input, output, outcome, extra); err != nil {
		log.Printf("Failed to record call step %s: %v", step, err)
	}
}
