package repository

import (
	"context"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
)

// RecordStore persists the per-user, time-ordered records.
//
// Create* assigns a unique, strictly increasing ID and the creation timestamp,
// fills them into the passed record and stores an immutable copy.
// List* never fails for an unknown owner; it returns an empty slice.
// Messages and moods are listed oldest first, social posts newest first.
type RecordStore interface {
	CreateMessage(ctx context.Context, m *entity.Message) error
	ListMessagesByOwner(ctx context.Context, userID int64) ([]entity.Message, error)

	CreateMood(ctx context.Context, m *entity.Mood) error
	ListMoodsByOwner(ctx context.Context, userID int64) ([]entity.Mood, error)

	CreateSocialMediaPost(ctx context.Context, p *entity.SocialMediaPost) error
	ListSocialMediaPostsByOwner(ctx context.Context, userID int64) ([]entity.SocialMediaPost, error)
	ListUrgentSocialMediaPostsByOwner(ctx context.Context, userID int64) ([]entity.SocialMediaPost, error)
	// GetSocialMediaPostsByIDs returns the owner's posts among ids, newest first.
	// IDs owned by someone else are silently skipped.
	GetSocialMediaPostsByIDs(ctx context.Context, userID int64, ids []int64) ([]entity.SocialMediaPost, error)
}
