package intents

import "strings"

// Intent is one of the fixed dialogue buckets.
type Intent string

const (
	IntentBooking     Intent = "booking"
	IntentPricing     Intent = "pricing"
	IntentInformation Intent = "information"
	IntentGeneral     Intent = "general"
)

// RoutedIntent is the router decision for how the turn should be handled.
type RoutedIntent struct {
	Intent    Intent
	Reasoning string
}

// KeywordRouter is a lightweight deterministic intent router. Only booking
// enters the slot pipeline; pricing and information get canned lookups and
// everything else is refused as off-domain.
type KeywordRouter struct{}

func NewKeywordRouter() *KeywordRouter {
	return &KeywordRouter{}
}

func (r *KeywordRouter) Route(text string) RoutedIntent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return RoutedIntent{Intent: IntentGeneral, Reasoning: "empty input"}
	}

	bookingHints := []string{"book", "appointment", "schedule", "reserve"}
	pricingHints := []string{"price", "cost", "how much", "fee", "charge"}
	informationHints := []string{"what", "when", "hours", "open", "close", "availability"}

	switch {
	case containsAny(normalized, bookingHints):
		return RoutedIntent{Intent: IntentBooking, Reasoning: "contains booking cues"}
	case containsAny(normalized, pricingHints):
		return RoutedIntent{Intent: IntentPricing, Reasoning: "contains pricing cues"}
	case containsAny(normalized, informationHints):
		return RoutedIntent{Intent: IntentInformation, Reasoning: "contains information cues"}
	default:
		return RoutedIntent{Intent: IntentGeneral, Reasoning: "no shop-related cues"}
	}
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
