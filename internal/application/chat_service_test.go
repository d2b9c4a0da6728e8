package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/internal/domain/signal"
	"github.com/oksasatya/moodwatch/internal/infrastructure/memory"
)

func newChat(store *memory.RecordStore, gw repository.CompletionGateway, timeout time.Duration) *ChatService {
	return NewChatService(store, gw, repository.CompletionOptions{}, signal.NewScorer(signal.DefaultUrgencyThreshold), nil, DefaultChatWindow, timeout, nil)
}

func TestChatService_PersistsHumanAndReply(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	gw := &fakeGateway{reply: "That sounds hard."}
	svc := newChat(store, gw, time.Second)

	msg, err := svc.PostMessage(ctx, 1, "I feel sad today", false)
	if err != nil {
		t.Fatalf("PostMessage failed: %v", err)
	}
	if msg.IsBot || msg.Content != "I feel sad today" || msg.ID == 0 {
		t.Fatalf("expected the human message back, got %+v", msg)
	}

	msgs, _ := store.ListMessagesByOwner(ctx, 1)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	reply := msgs[1]
	if !reply.IsBot || reply.Content != "That sounds hard." {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if reply.Metadata == nil || reply.Metadata.Source != "local" || reply.Metadata.DistressLevel != 2 {
		t.Fatalf("expected lexicon metadata on reply, got %+v", reply.Metadata)
	}
	if msgs[0].Metadata != nil {
		t.Fatalf("human messages carry no metadata")
	}

	calls := gw.calls()
	if len(calls) != 1 || !strings.HasSuffix(calls[0], "User: I feel sad today") {
		t.Fatalf("unexpected directive %v", calls)
	}
	if strings.Count(calls[0], "I feel sad today") != 1 {
		t.Fatalf("new message must not appear twice in the context:\n%s", calls[0])
	}
}

func TestChatService_ContextWindow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	for i := 1; i <= 12; i++ {
		_ = store.CreateMessage(ctx, &entity.Message{UserID: 1, Content: fmt.Sprintf("m%d", i), IsBot: i%2 == 0})
	}
	gw := &fakeGateway{reply: "ok"}
	svc := newChat(store, gw, time.Second)

	if _, err := svc.PostMessage(ctx, 1, "latest", false); err != nil {
		t.Fatal(err)
	}
	directive := gw.calls()[0]
	want := "Assistant: m8\nUser: m9\nAssistant: m10\nUser: m11\nAssistant: m12\nUser: latest"
	if !strings.HasSuffix(directive, want) {
		t.Fatalf("context should end with the last %d messages in order:\n%s", DefaultChatWindow, directive)
	}
	if strings.Contains(directive, ": m7\n") {
		t.Fatalf("message outside the window leaked into the context:\n%s", directive)
	}
}

func TestChatService_GatewayFailureStoresFallback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	gw := &fakeGateway{err: &apperr.GatewayError{StatusCode: 503, Body: "overloaded"}}
	svc := newChat(store, gw, time.Second)

	msg, err := svc.PostMessage(ctx, 1, "hello", false)
	if err != nil {
		t.Fatalf("gateway failure must not surface, got %v", err)
	}
	if msg.Content != "hello" {
		t.Fatalf("expected human message, got %+v", msg)
	}
	msgs, _ := store.ListMessagesByOwner(ctx, 1)
	if len(msgs) != 2 || msgs[1].Content != FallbackReply || !msgs[1].IsBot || msgs[1].Metadata != nil {
		t.Fatalf("expected one fallback reply, got %+v", msgs)
	}
}

func TestChatService_GatewayTimeoutStoresExactlyOneFallback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	gw := &fakeGateway{wait: func(ctx context.Context) error {
		<-ctx.Done()
		return &apperr.GatewayError{Err: ctx.Err()}
	}}
	svc := newChat(store, gw, 30*time.Millisecond)

	start := time.Now()
	if _, err := svc.PostMessage(ctx, 1, "anyone there?", false); err != nil {
		t.Fatalf("PostMessage failed: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("gateway call was not time-bounded")
	}
	msgs, _ := store.ListMessagesByOwner(ctx, 1)
	fallbacks := 0
	for _, m := range msgs {
		if m.IsBot && m.Content == FallbackReply {
			fallbacks++
		}
	}
	if len(msgs) != 2 || fallbacks != 1 {
		t.Fatalf("expected human message plus exactly one fallback, got %+v", msgs)
	}
}

func TestChatService_CancelledRequestStillPersistsReply(t *testing.T) {
	store := memory.NewRecordStore()
	ctx, cancel := context.WithCancel(context.Background())
	gw := &fakeGateway{reply: "still here", wait: func(gctx context.Context) error {
		cancel()
		select {
		case <-gctx.Done():
			return errors.New("gateway context must survive request cancellation")
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}}
	svc := newChat(store, gw, time.Second)

	if _, err := svc.PostMessage(ctx, 1, "hi", false); err != nil {
		t.Fatalf("PostMessage failed: %v", err)
	}
	msgs, _ := store.ListMessagesByOwner(context.Background(), 1)
	if len(msgs) != 2 || msgs[1].Content != "still here" {
		t.Fatalf("expected reply persisted after cancellation, got %+v", msgs)
	}
}

func TestChatService_BotMessageSkipsWorkflow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	gw := &fakeGateway{reply: "x"}
	svc := newChat(store, gw, time.Second)

	if _, err := svc.PostMessage(ctx, 1, "system note", true); err != nil {
		t.Fatal(err)
	}
	if len(gw.calls()) != 0 {
		t.Fatalf("bot-authored messages must not trigger a completion")
	}
	msgs, _ := store.ListMessagesByOwner(ctx, 1)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
}

func TestChatService_RejectsEmpty(t *testing.T) {
	svc := newChat(memory.NewRecordStore(), &fakeGateway{}, time.Second)
	_, err := svc.PostMessage(context.Background(), 1, "   ", false)
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

type fakeClassifier struct {
	out signal.Classification
	err error
}

func (f fakeClassifier) Classify(context.Context, string) (signal.Classification, error) {
	return f.out, f.err
}

func TestChatService_ModelClassification(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	svc := newChat(store, &fakeGateway{reply: "ok"}, time.Second)
	svc.Classifier = fakeClassifier{out: signal.Classification{SentimentScore: -40, DistressLevel: 6, Topics: []string{"work"}}}

	if _, err := svc.PostMessage(ctx, 1, "deadline pressure again", false); err != nil {
		t.Fatal(err)
	}
	msgs, _ := store.ListMessagesByOwner(ctx, 1)
	md := msgs[1].Metadata
	if md == nil || md.Source != "model" || md.DistressLevel != 6 || len(md.Topics) != 1 {
		t.Fatalf("expected model metadata, got %+v", md)
	}

	svc.Classifier = fakeClassifier{err: &apperr.MalformedResponseError{Reason: "no JSON"}}
	if _, err := svc.PostMessage(ctx, 1, "sad", false); err != nil {
		t.Fatal(err)
	}
	msgs, _ = store.ListMessagesByOwner(ctx, 1)
	if md := msgs[3].Metadata; md == nil || md.Source != "local" {
		t.Fatalf("expected lexicon fallback metadata, got %+v", md)
	}
}
