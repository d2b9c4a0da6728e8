package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/internal/domain/signal"
)

// MockGateway answers locally and deterministically. Used when no API key is available.
type MockGateway struct {
	scorer *signal.Scorer
}

func NewMockGateway(scorer *signal.Scorer) *MockGateway {
	return &MockGateway{scorer: scorer}
}

func (m *MockGateway) Complete(_ context.Context, directive string, _ repository.CompletionOptions) (string, error) {
	switch {
	case strings.Contains(directive, "JSON schema"):
		return m.classify(directive)
	case strings.Contains(directive, "Mood History:"):
		return mockAnalysis, nil
	}
	return fmt.Sprintf("I hear you. You said %q. Can you tell me a bit more about how that makes you feel?", lastUserLine(directive)), nil
}

func (m *MockGateway) classify(directive string) (string, error) {
	text := directive
	if i := strings.LastIndex(directive, "Message:\n"); i >= 0 {
		text = directive[i+len("Message:\n"):]
	}
	sig, err := m.scorer.Score(text)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(signal.Classification{
		SentimentScore:     sig.SentimentScore,
		DistressLevel:      sig.DistressLevel,
		IsUrgent:           sig.IsUrgent,
		Topics:             []string{},
		SuggestedResources: []string{},
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func lastUserLine(directive string) string {
	lines := strings.Split(strings.TrimSpace(directive), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if after, ok := strings.CutPrefix(lines[i], "User: "); ok {
			return after
		}
	}
	return strings.TrimSpace(directive)
}

const mockAnalysis = `## Pattern Analysis
Your recent entries are too few for a reliable trend.

## Professional Insights
Regular check-ins make changes in mood easier to notice.

## Recommendations
1. Keep logging your mood once a day.
2. Add a short note when a score changes noticeably.

## Areas of Concern
None identified from the available entries.`

var _ repository.CompletionGateway = (*MockGateway)(nil)
