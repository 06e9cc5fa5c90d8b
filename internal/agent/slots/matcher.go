package slots

import (
	"strings"
	"unicode"
)

// MatcherConfig tunes the fuzzy service matcher. The constants are empirical
// and deliberately configurable.
type MatcherConfig struct {
	Threshold       float64
	TokenWeight     float64
	CharacterWeight float64
}

// DefaultMatcherConfig returns the tuning the shop ships with.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{Threshold: 0.5, TokenWeight: 0.8, CharacterWeight: 0.2}
}

// BestMatch scores every known service against the utterance and returns the
// highest-scoring one, or ok=false when nothing reaches the threshold.
// Ambiguous utterances yield no guess, never a wrong one.
func BestMatch(text string, services []string, cfg MatcherConfig) (name string, score float64, ok bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", 0, false
	}

	best := ""
	bestScore := 0.0
	for _, svc := range services {
		s := Similarity(svc, normalized, cfg)
		if s > bestScore {
			best = svc
			bestScore = s
		}
	}

	if bestScore < cfg.Threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}

// Similarity scores a service name against normalized input text: 1.0 when
// every service token appears in the input, otherwise a weighted blend of
// token overlap and character-sequence similarity.
func Similarity(service, normalizedInput string, cfg MatcherConfig) float64 {
	normalizedService := Normalize(service)
	serviceTokens := strings.Fields(normalizedService)
	inputTokens := strings.Fields(normalizedInput)
	if len(serviceTokens) == 0 || len(inputTokens) == 0 {
		return 0
	}

	inputSet := make(map[string]struct{}, len(inputTokens))
	for _, tok := range inputTokens {
		inputSet[tok] = struct{}{}
	}

	matched := 0
	for _, tok := range serviceTokens {
		if _, found := inputSet[tok]; found {
			matched++
		}
	}
	if matched == len(serviceTokens) {
		return 1.0
	}

	denom := len(serviceTokens)
	if len(inputTokens) > denom {
		denom = len(inputTokens)
	}
	overlap := float64(matched) / float64(denom)
	ratio := sequenceRatio(normalizedService, normalizedInput)

	return cfg.TokenWeight*overlap + cfg.CharacterWeight*ratio
}

// Normalize lowercases, expands "&" to "and", strips punctuation, and
// collapses whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "&", " and ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// sequenceRatio is 2*LCS/(len(a)+len(b)) over runes, the classic similarity
// ratio of two character sequences.
func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
