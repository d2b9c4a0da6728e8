package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordingSender struct {
	to, subject, text, html string
	err                     error
}

func (r *recordingSender) Send(_ context.Context, to, subject, text, html string) error {
	r.to, r.subject, r.text, r.html = to, subject, text, html
	return r.err
}

func TestAlertDispatcher_Sends(t *testing.T) {
	s := &recordingSender{}
	d := &AlertDispatcher{Sender: s, To: "care@example.org", AppName: "moodwatch"}
	body, _ := json.Marshal(UrgentAlertJob{
		PostID: 5, UserID: 2, Username: "bob", Platform: "reddit",
		DistressLevel: 9, Sentiment: -80, Excerpt: "cannot go on", CreatedAt: time.Now(),
	})

	if err := d.Handle(context.Background(), body); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if s.to != "care@example.org" || !strings.Contains(s.subject, "bob") || !strings.Contains(s.text, "cannot go on") {
		t.Fatalf("unexpected email %+v", s)
	}
}

func TestAlertDispatcher_BadPayloadIsPermanent(t *testing.T) {
	d := &AlertDispatcher{Sender: &recordingSender{}, To: "x@example.org"}
	for _, body := range []string{`not json`, `{"post_id":0,"user_id":1}`} {
		if err := d.Handle(context.Background(), []byte(body)); !errors.Is(err, ErrBadPayload) {
			t.Errorf("%s: expected ErrBadPayload, got %v", body, err)
		}
	}
}

func TestAlertDispatcher_SendFailureIsRetryable(t *testing.T) {
	d := &AlertDispatcher{Sender: &recordingSender{err: errors.New("mailgun 502")}, To: "x@example.org"}
	body, _ := json.Marshal(UrgentAlertJob{PostID: 1, UserID: 1, DistressLevel: 8})
	err := d.Handle(context.Background(), body)
	if err == nil || errors.Is(err, ErrBadPayload) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}
