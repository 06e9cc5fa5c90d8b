package agent

import (
	"strings"
	"unicode"

	"github.com/superior-auto/frontdesk/internal/channel"
	"github.com/superior-auto/frontdesk/internal/session"
	"github.com/superior-auto/frontdesk/internal/timeutil"
)

// clarifySlots asks one direct question per missing slot, in dialogue order.
// Every empty or invalid answer consumes one attempt; exhausting the budget
// for any single slot escalates the whole session. Returns false on
// escalation.
func (r *Receptionist) clarifySlots(sess *session.Session, ch channel.Channel) bool {
	for _, name := range sess.Slots.Missing() {
		attempts := 0
		for sess.Slots.Get(name) == "" {
			if attempts >= r.maxSlotAttempts {
				r.escalate(sess, ch, "failed_clarify_"+name, "", nil)
				return false
			}
			switch name {
			case session.SlotService:
				r.clarifyService(sess, ch)
			case session.SlotDate:
				r.clarifyDate(sess, ch)
			case session.SlotTime:
				r.clarifyTime(sess, ch)
			}
			attempts++
		}
	}
	return true
}

func (r *Receptionist) clarifyService(sess *session.Session, ch channel.Channel) {
	question := "Which service would you like to book? Options: " + strings.Join(r.shop.ServiceNames(), ", ") + ": "
	answer, err := ch.Collect(question)
	if err != nil || strings.TrimSpace(answer) == "" {
		return
	}
	value := titleCase(strings.TrimSpace(answer))
	sess.SetSlot(session.SlotService, value)
	r.audit(sess, "clarified_service", answer, value, nil)
}

func (r *Receptionist) clarifyDate(sess *session.Session, ch channel.Channel) {
	answer, err := ch.Collect("What date would you like? (YYYY-MM-DD): ")
	if err != nil || strings.TrimSpace(answer) == "" {
		return
	}
	value := strings.TrimSpace(answer)
	if !timeutil.ValidDate(value) {
		ch.Prompt(invalidDateHint)
		r.audit(sess, "date_invalid", answer, "", nil)
		return
	}
	sess.SetSlot(session.SlotDate, value)
	r.audit(sess, "clarified_date", answer, value, nil)
}

func (r *Receptionist) clarifyTime(sess *session.Session, ch channel.Channel) {
	answer, err := ch.Collect("What time works for you? (HH:MM 24h): ")
	if err != nil || strings.TrimSpace(answer) == "" {
		return
	}
	value := strings.TrimSpace(answer)
	if !timeutil.ValidClock(value) {
		ch.Prompt(invalidTimeHint)
		r.audit(sess, "time_invalid", answer, "", nil)
		return
	}
	sess.SetSlot(session.SlotTime, value)
	r.audit(sess, "clarified_time", answer, value, nil)
}

// titleCase uppercases the first letter of each word, matching how service
// names are stored in the shop catalogue.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
