package entity

import "time"

// Message is one turn of a user's chat timeline, written by the user or generated.
type Message struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Content   string           `json:"content"`
	IsBot     bool             `json:"isBot"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// MessageMetadata is attached only to generated replies that were analyzed inline.
type MessageMetadata struct {
	SentimentScore     int      `json:"sentimentScore"`
	DistressLevel      int      `json:"distressLevel"`
	IsUrgent           bool     `json:"isUrgent"`
	Topics             []string `json:"topics,omitempty"`
	SuggestedResources []string `json:"suggestedResources,omitempty"`
	// Source is "local" for lexicon scoring or "model" for gateway classification.
	Source string `json:"source"`
}
