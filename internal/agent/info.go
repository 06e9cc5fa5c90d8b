package agent

import (
	"strings"

	"github.com/superior-auto/frontdesk/internal/channel"
	"github.com/superior-auto/frontdesk/internal/session"
)

// handleInfo answers hours and pricing questions from the shop config
// without touching the booking pipeline. Questions that name neither hours
// nor prices get the off-domain refusal.
func (r *Receptionist) handleInfo(input string, sess *session.Session, ch channel.Channel) string {
	lowered := strings.ToLower(input)

	if strings.Contains(lowered, "hours") || strings.Contains(lowered, "open") || strings.Contains(lowered, "close") {
		reply := "We are open from " + r.shop.Hours.Open + " to " + r.shop.Hours.Close + "."
		ch.Prompt(reply)
		r.audit(sess, "info_response", input, reply, nil)
		return reply
	}

	if strings.Contains(lowered, "price") || strings.Contains(lowered, "cost") {
		var found []string
		for _, svc := range r.shop.Services {
			if strings.Contains(lowered, strings.ToLower(svc.Name)) {
				price := svc.Price
				if price == "" {
					price = "N/A"
				}
				found = append(found, svc.Name+": "+price)
			}
		}
		var reply string
		if len(found) > 0 {
			reply = "Pricing: " + strings.Join(found, "; ")
		} else {
			reply = "Which service are you asking about? Options: " + strings.Join(r.shop.ServiceNames(), ", ")
		}
		ch.Prompt(reply)
		r.audit(sess, "pricing_response", input, reply, nil)
		return reply
	}

	ch.Prompt(OffDomainMessage)
	r.audit(sess, "fallback_info", input, OffDomainMessage, nil)
	return OffDomainMessage
}
