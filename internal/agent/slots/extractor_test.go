package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superior-auto/frontdesk/internal/session"
)

var knownServices = []string{
	"Oil Change",
	"Brake Inspection",
	"Battery Test & Replacement",
	"Tire Rotation",
}

func TestExtract(t *testing.T) {
	cfg := DefaultMatcherConfig()

	tests := []struct {
		name string
		text string
		want session.Slots
	}{
		{
			name: "all three slots at once",
			text: "I want to book an oil change on 2025-08-25 at 11:00",
			want: session.Slots{Service: "Oil Change", Date: "2025-08-25", Time: "11:00"},
		},
		{
			name: "date only",
			text: "how about 2025-09-01?",
			want: session.Slots{Date: "2025-09-01"},
		},
		{
			name: "single digit hour",
			text: "can I come at 9:30",
			want: session.Slots{Time: "9:30"},
		},
		{
			name: "impossible calendar date is not extracted",
			text: "book me for 2025-02-31 at 10:00",
			want: session.Slots{Time: "10:00"},
		},
		{
			name: "hour out of range is not a time",
			text: "see you at 25:00",
			want: session.Slots{},
		},
		{
			name: "ampersand service spelled with and",
			text: "I need a battery test and replacement",
			want: session.Slots{Service: "Battery Test & Replacement"},
		},
		{
			name: "ambiguous utterance yields no service guess",
			text: "my car makes a weird noise",
			want: session.Slots{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, knownServices, session.Slots{}, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNeverOverwritesKnownSlots(t *testing.T) {
	cfg := DefaultMatcherConfig()
	known := session.Slots{Service: "Tire Rotation", Date: "2025-08-20"}

	got := Extract("actually an oil change on 2025-09-15 at 14:00", knownServices, known, cfg)

	// Existing slots win; only the gap is filled.
	assert.Equal(t, "Tire Rotation", got.Service)
	assert.Equal(t, "2025-08-20", got.Date)
	assert.Equal(t, "14:00", got.Time)
}

func TestBestMatch(t *testing.T) {
	cfg := DefaultMatcherConfig()

	name, score, ok := BestMatch("battery test and replacement please", knownServices, cfg)
	require.True(t, ok)
	assert.Equal(t, "Battery Test & Replacement", name)
	assert.GreaterOrEqual(t, score, 0.5)

	// Partial mention still resolves when it clears the threshold.
	name, _, ok = BestMatch("do you do brake inspection tomorrow", knownServices, cfg)
	require.True(t, ok)
	assert.Equal(t, "Brake Inspection", name)

	_, _, ok = BestMatch("something completely unrelated", knownServices, cfg)
	assert.False(t, ok)

	_, _, ok = BestMatch("", knownServices, cfg)
	assert.False(t, ok)
}

func TestSimilarityExactTokenCoverage(t *testing.T) {
	cfg := DefaultMatcherConfig()

	got := Similarity("Oil Change", Normalize("I'd like an OIL change, please"), cfg)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Battery Test & Replacement", want: "battery test and replacement"},
		{in: "  Oil   Change!! ", want: "oil change"},
		{in: "brake-inspection", want: "brake inspection"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}
