package intents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	router := NewKeywordRouter()

	tests := []struct {
		name string
		text string
		want Intent
	}{
		{name: "book verb", text: "I want to book an oil change", want: IntentBooking},
		{name: "appointment noun", text: "Can I get an appointment tomorrow?", want: IntentBooking},
		{name: "schedule verb", text: "schedule me for a tire rotation", want: IntentBooking},
		{name: "pricing question", text: "how much is a brake inspection", want: IntentPricing},
		{name: "cost keyword", text: "What does an oil change cost?", want: IntentPricing},
		{name: "hours question", text: "when do you open?", want: IntentInformation},
		{name: "availability question", text: "what is your availability", want: IntentInformation},
		{name: "off domain", text: "Tell me a joke", want: IntentGeneral},
		{name: "empty", text: "   ", want: IntentGeneral},
		{name: "booking beats pricing", text: "book me in, how much is it?", want: IntentBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := router.Route(tt.text)
			assert.Equal(t, tt.want, got.Intent)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}
