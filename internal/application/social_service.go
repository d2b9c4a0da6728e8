package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/internal/domain/signal"
	"github.com/oksasatya/moodwatch/pkg/mailer"
)

// JobPublisher puts a JSON job on a queue. *helpers.RabbitPublisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// PostIndexer provides full-text search over posts.
type PostIndexer interface {
	IndexPost(ctx context.Context, post entity.SocialMediaPost) error
	SearchPostIDs(ctx context.Context, userID int64, q string, size int) ([]int64, error)
}

type CreatePostInput struct {
	Content  string
	Platform string
	Metadata *entity.PostMetadata
}

type SocialService struct {
	Store     repository.RecordStore
	Users     repository.UserRepository // optional, enriches alerts
	Scorer    *signal.Scorer
	Publisher JobPublisher // optional
	Indexer   PostIndexer  // optional
	Logger    *logrus.Logger
}

func NewSocialService(store repository.RecordStore, users repository.UserRepository, scorer *signal.Scorer, pub JobPublisher, idx PostIndexer, logger *logrus.Logger) *SocialService {
	return &SocialService{Store: store, Users: users, Scorer: scorer, Publisher: pub, Indexer: idx, Logger: logger}
}

// Create scores the content and stores the post. Risk fields are always computed here.
func (s *SocialService) Create(ctx context.Context, userID int64, in CreatePostInput) (*entity.SocialMediaPost, error) {
	platform := strings.TrimSpace(in.Platform)
	if platform == "" {
		return nil, apperr.Validation("platform", "platform is required")
	}
	sig, err := s.Scorer.Score(in.Content)
	if err != nil {
		return nil, err
	}

	post := &entity.SocialMediaPost{
		UserID:         userID,
		Content:        in.Content,
		Platform:       platform,
		SentimentScore: sig.SentimentScore,
		DistressLevel:  sig.DistressLevel,
		IsUrgent:       sig.IsUrgent,
		Metadata:       in.Metadata,
	}
	if err := s.Store.CreateSocialMediaPost(ctx, post); err != nil {
		return nil, fmt.Errorf("create social media post: %w", err)
	}

	if post.IsUrgent {
		s.publishAlert(ctx, post)
	}
	if s.Indexer != nil {
		if err := s.Indexer.IndexPost(ctx, *post); err != nil {
			s.log().WithError(err).WithField("post_id", post.ID).Warn("index post failed")
		}
	}
	return post, nil
}

func (s *SocialService) List(ctx context.Context, userID int64) ([]entity.SocialMediaPost, error) {
	posts, err := s.Store.ListSocialMediaPostsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list social media posts: %w", err)
	}
	return posts, nil
}

func (s *SocialService) ListUrgent(ctx context.Context, userID int64) ([]entity.SocialMediaPost, error) {
	posts, err := s.Store.ListUrgentSocialMediaPostsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list urgent social media posts: %w", err)
	}
	return posts, nil
}

// Search returns the owner's posts matching q, newest first. Without an index it
// falls back to a case-insensitive substring match over the store.
func (s *SocialService) Search(ctx context.Context, userID int64, q string, size int) ([]entity.SocialMediaPost, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.Validation("q", "query is required")
	}
	if size <= 0 || size > 50 {
		size = 10
	}

	if s.Indexer != nil {
		ids, err := s.Indexer.SearchPostIDs(ctx, userID, q, size)
		if err == nil {
			posts, err := s.Store.GetSocialMediaPostsByIDs(ctx, userID, ids)
			if err != nil {
				return nil, fmt.Errorf("load search hits: %w", err)
			}
			return posts, nil
		}
		s.log().WithError(err).WithField("user_id", userID).Warn("search index failed, scanning store")
	}

	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]entity.SocialMediaPost, 0, size)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Content), needle) {
			out = append(out, p)
			if len(out) == size {
				break
			}
		}
	}
	return out, nil
}

func (s *SocialService) publishAlert(ctx context.Context, post *entity.SocialMediaPost) {
	if s.Publisher == nil {
		return
	}
	job := mailer.UrgentAlertJob{
		PostID:        post.ID,
		UserID:        post.UserID,
		Platform:      post.Platform,
		DistressLevel: post.DistressLevel,
		Sentiment:     post.SentimentScore,
		Excerpt:       mailer.Excerpt(post.Content),
		CreatedAt:     post.Timestamp,
	}
	if s.Users != nil {
		if u, err := s.Users.GetByID(ctx, post.UserID); err == nil {
			job.Username = u.Username
		}
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.log().WithError(err).WithFields(logrus.Fields{"post_id": post.ID, "user_id": post.UserID}).Warn("publish urgent alert failed")
		return
	}
	s.log().WithFields(logrus.Fields{"post_id": post.ID, "distress_level": post.DistressLevel}).Info("urgent alert queued")
}

func (s *SocialService) log() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
