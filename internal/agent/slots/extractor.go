package slots

import (
	"regexp"

	"github.com/superior-auto/frontdesk/internal/session"
	"github.com/superior-auto/frontdesk/internal/timeutil"
)

var (
	datePattern = regexp.MustCompile(`\b20\d{2}-\d{2}-\d{2}\b`)
	timePattern = regexp.MustCompile(`\b([01]?\d|2[0-3]):[0-5]\d\b`)
)

// Extract pulls service, date, and time from a free-form utterance and merges
// the result with slots already known for the session. Known slots take
// priority: extraction only fills gaps, it never overwrites an earlier answer.
func Extract(text string, services []string, known session.Slots, cfg MatcherConfig) session.Slots {
	merged := known

	if merged.Date == "" {
		if date := extractDate(text); date != "" {
			merged.Date = date
		}
	}

	if merged.Time == "" {
		if clock := timePattern.FindString(text); clock != "" {
			merged.Time = clock
		}
	}

	if merged.Service == "" {
		if name, _, ok := BestMatch(text, services, cfg); ok {
			merged.Service = name
		}
	}

	return merged
}

// extractDate returns the first date-shaped token that survives a real
// calendar parse. Shapes like 2025-02-31 must be rejected, not passed along.
func extractDate(text string) string {
	for _, candidate := range datePattern.FindAllString(text, -1) {
		if timeutil.ValidDate(candidate) {
			return candidate
		}
	}
	return ""
}
