package entity

import (
	"encoding/json"
	"time"
)

// SocialMediaPost is an observed post with server-computed risk signals.
// SentimentScore is in [-100,100], DistressLevel in [0,10].
type SocialMediaPost struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"userId"`
	Content        string        `json:"content"`
	Platform       string        `json:"platform"`
	SentimentScore int           `json:"sentimentScore"`
	DistressLevel  int           `json:"distressLevel"`
	IsUrgent       bool          `json:"isUrgent"`
	Metadata       *PostMetadata `json:"metadata,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// PostMetadata carries typed tags plus an opaque per-platform payload.
type PostMetadata struct {
	Topics             []string        `json:"topics,omitempty"`
	SuggestedResources []string        `json:"suggestedResources,omitempty"`
	Platform           json.RawMessage `json:"platformData,omitempty"`
}
