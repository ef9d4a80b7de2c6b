package entity

import "strings"

const (
	SentimentPositive     = "POSITIVE"
	SentimentNeutral      = "NEUTRAL"
	SentimentNegative     = "NEGATIVE"
	SentimentVeryPositive = "VERY_POSITIVE"
	SentimentVeryNegative = "VERY_NEGATIVE"
)

// DefaultIntent is stored when the analyzer fails or returns nothing
// usable.
const DefaultIntent = "general inquiry"

// NeutralScore is the lead score substituted for missing or unparsable
// score values.
const NeutralScore = 50

// Analysis is the sanitized result of a text-analysis call.
type Analysis struct {
	Sentiment string   `json:"sentiment"`
	Score     int      `json:"score"`
	Intent    string   `json:"intent"`
	Tags      []string `json:"tags"`
}

// NeutralAnalysis is the fixed fallback substituted whenever the
// analysis collaborator fails or times out.
func NeutralAnalysis() Analysis {
	return Analysis{
		Sentiment: SentimentNeutral,
		Score:     NeutralScore,
		Intent:    DefaultIntent,
		Tags:      []string{},
	}
}

// ParseSentiment maps a sentiment label to its canonical form.
// Separators are normalized so "very positive" and "very-positive"
// both resolve; anything unrecognized collapses to NEUTRAL.
func ParseSentiment(s string) string {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentVeryPositive, SentimentVeryNegative:
		return normalized
	default:
		return SentimentNeutral
	}
}
