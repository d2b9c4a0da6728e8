package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oksasatya/moodwatch/pkg/mailer/templates"
)

// Sender delivers one rendered email. *Mailgun satisfies it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrBadPayload marks a job that can never be delivered and must not be requeued.
var ErrBadPayload = errors.New("bad alert payload")

// AlertDispatcher turns queued UrgentAlertJobs into care-team emails.
type AlertDispatcher struct {
	Sender  Sender
	To      string
	AppName string
}

// Handle decodes, renders and sends one job body. Errors wrapping ErrBadPayload
// are permanent; anything else is worth retrying.
func (d *AlertDispatcher) Handle(ctx context.Context, body []byte) error {
	var job UrgentAlertJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if job.PostID == 0 || job.UserID == 0 {
		return fmt.Errorf("%w: missing post or user id", ErrBadPayload)
	}

	subject, text, html, err := templates.Render(templates.UrgentAlert, templates.AlertData{
		AppName:       d.AppName,
		PostID:        job.PostID,
		UserID:        job.UserID,
		Username:      job.Username,
		Platform:      job.Platform,
		DistressLevel: job.DistressLevel,
		Sentiment:     job.Sentiment,
		Excerpt:       job.Excerpt,
		CreatedAt:     job.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: render: %v", ErrBadPayload, err)
	}
	if err := d.Sender.Send(ctx, d.To, subject, text, html); err != nil {
		return fmt.Errorf("send alert for post %d: %w", job.PostID, err)
	}
	return nil
}
