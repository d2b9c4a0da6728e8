package mailer

import "time"

// UrgentAlertJob is the JSON payload put on the alert queue when a post is urgent.
type UrgentAlertJob struct {
	PostID        int64     `json:"post_id"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	Platform      string    `json:"platform"`
	DistressLevel int       `json:"distress_level"`
	Sentiment     int       `json:"sentiment_score"`
	Excerpt       string    `json:"excerpt"`
	CreatedAt     time.Time `json:"created_at"`
}

const excerptLen = 280

// Excerpt shortens content to at most excerptLen runes.
func Excerpt(content string) string {
	r := []rune(content)
	if len(r) <= excerptLen {
		return content
	}
	return string(r[:excerptLen-1]) + "…"
}
