package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/internal/domain/signal"
)

// FallbackReply is stored as the bot turn whenever the completion gateway fails.
const FallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again in a moment. " +
	"If you need immediate support, please reach out to someone you trust or a local crisis line."

// DefaultGatewayTimeout bounds a single completion call.
const DefaultGatewayTimeout = 20 * time.Second

// MessageClassifier produces a model-derived reading of a message.
type MessageClassifier interface {
	Classify(ctx context.Context, text string) (signal.Classification, error)
}

type ChatService struct {
	Store      repository.RecordStore
	Gateway    repository.CompletionGateway
	Options    repository.CompletionOptions
	Scorer     *signal.Scorer
	Classifier MessageClassifier // optional
	Window     int
	Timeout    time.Duration
	Logger     *logrus.Logger
}

func NewChatService(store repository.RecordStore, gw repository.CompletionGateway, opts repository.CompletionOptions, scorer *signal.Scorer, classifier MessageClassifier, window int, timeout time.Duration, logger *logrus.Logger) *ChatService {
	if window < 1 {
		window = DefaultChatWindow
	}
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &ChatService{
		Store:      store,
		Gateway:    gw,
		Options:    opts,
		Scorer:     scorer,
		Classifier: classifier,
		Window:     window,
		Timeout:    timeout,
		Logger:     logger,
	}
}

// PostMessage stores the message and, for human messages, produces one bot reply.
// The human message is returned. A gateway failure is absorbed into FallbackReply;
// the reply is persisted even if ctx is cancelled while the gateway call is outstanding.
func (s *ChatService) PostMessage(ctx context.Context, userID int64, content string, isBot bool) (*entity.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content", "content must not be empty")
	}

	msg := &entity.Message{UserID: userID, Content: content, IsBot: isBot}
	if err := s.Store.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if isBot {
		return msg, nil
	}

	// From here on the turn must complete regardless of the caller going away.
	bg := context.WithoutCancel(ctx)

	all, err := s.Store.ListMessagesByOwner(bg, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	prior := make([]entity.Message, 0, len(all))
	for _, m := range all {
		if m.ID != msg.ID {
			prior = append(prior, m)
		}
	}
	directive := chatPreamble + BuildChatContext(prior, content, s.Window)

	gctx, cancel := context.WithTimeout(bg, s.Timeout)
	defer cancel()

	reply := &entity.Message{UserID: userID, IsBot: true}
	text, err := s.Gateway.Complete(gctx, directive, s.Options)
	if err != nil {
		status, body := apperr.UpstreamDetails(err)
		s.log().WithError(err).WithFields(logrus.Fields{
			"user_id":         userID,
			"message_id":      msg.ID,
			"upstream_status": status,
			"upstream_body":   body,
		}).Warn("chat completion failed, storing fallback reply")
		reply.Content = FallbackReply
	} else {
		reply.Content = text
		reply.Metadata = s.annotate(gctx, userID, content)
	}

	if err := s.Store.CreateMessage(bg, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return msg, nil
}

// List returns the user's messages oldest first.
func (s *ChatService) List(ctx context.Context, userID int64) ([]entity.Message, error) {
	msgs, err := s.Store.ListMessagesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// annotate reads the human message with the lexicon scorer, or with the model
// classifier when one is configured and succeeds.
func (s *ChatService) annotate(ctx context.Context, userID int64, content string) *entity.MessageMetadata {
	if s.Classifier != nil {
		c, err := s.Classifier.Classify(ctx, content)
		if err == nil {
			return &entity.MessageMetadata{
				SentimentScore:     c.SentimentScore,
				DistressLevel:      c.DistressLevel,
				IsUrgent:           c.IsUrgent,
				Topics:             c.Topics,
				SuggestedResources: c.SuggestedResources,
				Source:             "model",
			}
		}
		status, body := apperr.UpstreamDetails(err)
		s.log().WithError(err).WithFields(logrus.Fields{
			"user_id":         userID,
			"upstream_status": status,
			"upstream_body":   body,
		}).Warn("message classification failed, using lexicon score")
	}
	if s.Scorer == nil {
		return nil
	}
	sig, err := s.Scorer.Score(content)
	if err != nil {
		return nil
	}
	return &entity.MessageMetadata{
		SentimentScore: sig.SentimentScore,
		DistressLevel:  sig.DistressLevel,
		IsUrgent:       sig.IsUrgent,
		Source:         "local",
	}
}

func (s *ChatService) log() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
