package entity

import "time"

const (
	MinMoodScore = 1
	MaxMoodScore = 10
)

// Mood is a self-reported score on a 1..10 scale.
type Mood struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Score     int       `json:"score"`
	Note      *string   `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
