package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/superior-auto/frontdesk/internal/channel"
	"github.com/superior-auto/frontdesk/internal/claude"
	"github.com/superior-auto/frontdesk/internal/session"
)

type confirmOutcome int

const (
	confirmEscalated confirmOutcome = iota
	confirmAccepted
	confirmRejected
)

// Keyword sets for the deterministic confirmation pass. Matching is
// case-insensitive substring search; a reply hitting both sets is unclear.
var (
	affirmativeKeywords = []string{"yes", "correct", "that is right", "yep", "sure"}
	negativeKeywords    = []string{"no", "nope", "wrong", "cancel"}
)

type replyClass int

const (
	replyUnclear replyClass = iota
	replyAffirmative
	replyNegative
)

func classifyReply(reply string) replyClass {
	lowered := strings.ToLower(reply)
	affirm := containsAnyKeyword(lowered, affirmativeKeywords)
	negate := containsAnyKeyword(lowered, negativeKeywords)
	switch {
	case affirm && negate:
		return replyUnclear
	case affirm:
		return replyAffirmative
	case negate:
		return replyNegative
	default:
		return replyUnclear
	}
}

func containsAnyKeyword(lowered string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// confirm presents the canonical paraphrase and classifies the caller's
// reply. The deterministic pass decides most calls; only an unclear reply
// consults the usage guard and, budget permitting, the external classifier.
// The fallback is single shot: an unclear or failed fallback escalates.
func (r *Receptionist) confirm(ctx context.Context, paraphrase string, sess *session.Session, ch channel.Channel) confirmOutcome {
	reply, err := ch.Collect(paraphrase)
	if err != nil {
		r.escalate(sess, ch, "confirmation_channel_error", "", map[string]any{"error": err.Error()})
		return confirmEscalated
	}
	r.audit(sess, "confirmation_response", paraphrase, reply, nil)

	switch classifyReply(reply) {
	case replyAffirmative:
		return confirmAccepted
	case replyNegative:
		return confirmRejected
	}

	if !r.guard.CanProceed() {
		r.auditOutcome(sess, "usage_limit_hit", "", "", "denied", nil)
		r.escalate(sess, ch, "usage_limit_escalation", usageLimitPrefix, nil)
		return confirmEscalated
	}
	if r.classifier == nil || !r.classifier.IsConfigured() {
		r.escalate(sess, ch, "confirmation_unclear", confirmErrPrefix, nil)
		return confirmEscalated
	}

	result, err := r.classifier.Classify(ctx, r.confirmationPrompt(paraphrase, reply, sess))
	if err != nil {
		r.auditOutcome(sess, "confirmation_llm_error", paraphrase, "", "error", map[string]any{"error": err.Error()})
		r.escalate(sess, ch, "confirmation_llm_escalation", confirmErrPrefix, nil)
		return confirmEscalated
	}
	// Token cost is recorded before the reply is interpreted.
	if result.TokensUsed > 0 {
		if err := r.guard.Record(sess.ID, result.TokensUsed); err != nil {
			fmt.Printf("Failed to record usage: %v\n", err)
		}
	}
	r.audit(sess, "confirmation_fallback", paraphrase, result.Text, map[string]any{"tokens": result.TokensUsed})

	switch classifyReply(result.Text) {
	case replyAffirmative:
		return confirmAccepted
	case replyNegative:
		return confirmRejected
	default:
		r.escalate(sess, ch, "confirmation_unclear", confirmErrPrefix, nil)
		return confirmEscalated
	}
}

func (r *Receptionist) confirmationPrompt(paraphrase, reply string, sess *session.Session) []claude.Message {
	confirmed := fmt.Sprintf("service=%s, date=%s, time=%s",
		sess.Slots.Service, sess.Slots.Date, sess.Slots.Time)
	return []claude.Message{
		{Role: "system", Content: claude.SystemPrompt},
		{Role: "system", Content: "Confirmed booking info: " + confirmed + "."},
		{Role: "system", Content: "The caller was asked: " + paraphrase + " Decide whether their reply confirms the booking. Answer with the single word yes or no."},
		{Role: "user", Content: reply},
	}
}
