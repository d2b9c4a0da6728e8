// Package signal scores free text into bounded risk signals using a fixed
// negative-affect lexicon. It is a lexical-density heuristic beneath the
// generative layer, not a clinical instrument.
package signal

import (
	"math"
	"strings"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
)

const (
	MinSentiment = -100
	MaxSentiment = 100
	MaxDistress  = 10

	// DefaultUrgencyThreshold is the distress level from which a text is urgent.
	DefaultUrgencyThreshold = 8
)

// DefaultLexicon lists lower-case tokens counted as negative affect.
var DefaultLexicon = []string{
	// sadness
	"sad", "sadness", "unhappy", "depressed", "depression", "miserable", "lonely",
	"alone", "empty", "numb", "crying", "cry", "grief", "heartbroken", "worthless",
	"hopeless", "helpless", "tired", "exhausted",
	// anxiety and stress
	"anxious", "anxiety", "panic", "scared", "afraid", "fear", "worried", "worry",
	"nervous", "stress", "stressed", "overwhelmed", "burnout", "pressure",
	// self-harm ideation
	"suicide", "suicidal", "die", "dead", "death", "kill", "hurt", "cutting",
	"self-harm", "harm", "overdose", "disappear", "pain",
	// help-seeking
	"help", "sos", "crisis", "emergency",
}

// Signal is the outcome of scoring one text span.
type Signal struct {
	SentimentScore int  `json:"sentimentScore"`
	DistressLevel  int  `json:"distressLevel"`
	IsUrgent       bool `json:"isUrgent"`
}

// Scorer is safe for concurrent use; it is never mutated after construction.
type Scorer struct {
	lexicon   map[string]struct{}
	threshold int
}

// NewScorer builds a scorer over DefaultLexicon. A threshold outside [1,10]
// falls back to DefaultUrgencyThreshold.
func NewScorer(threshold int) *Scorer {
	return NewScorerWithLexicon(DefaultLexicon, threshold)
}

func NewScorerWithLexicon(words []string, threshold int) *Scorer {
	if threshold < 1 || threshold > MaxDistress {
		threshold = DefaultUrgencyThreshold
	}
	lex := make(map[string]struct{}, len(words))
	for _, w := range words {
		lex[strings.ToLower(w)] = struct{}{}
	}
	return &Scorer{lexicon: lex, threshold: threshold}
}

// Threshold returns the urgency threshold in use.
func (s *Scorer) Threshold() int { return s.threshold }

// Score tokenizes on whitespace, lower-cases, and counts exact lexicon hits.
// Empty or whitespace-only text is rejected.
func (s *Scorer) Score(text string) (Signal, error) {
	tokens := strings.Fields(strings.ToLower(text))
	w := len(tokens)
	if w == 0 {
		return Signal{}, apperr.Validation("content", "text must not be empty")
	}
	n := 0
	for _, tok := range tokens {
		if _, ok := s.lexicon[tok]; ok {
			n++
		}
	}

	sentiment := int(math.Round((1-float64(n)/float64(w))*200 - 100))
	distress := min(MaxDistress, n*2)
	return Signal{
		SentimentScore: clamp(sentiment, MinSentiment, MaxSentiment),
		DistressLevel:  distress,
		IsUrgent:       s.IsUrgent(distress),
	}, nil
}

// IsUrgent applies the urgency policy to an already computed distress level.
func (s *Scorer) IsUrgent(distress int) bool {
	return distress >= s.threshold
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
