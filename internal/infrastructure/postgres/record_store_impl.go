package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

// RecordStore persists messages, moods and social posts. IDs come from the
// shared record_id_seq sequence; metadata columns are JSONB.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

func (s *RecordStore) CreateMessage(ctx context.Context, m *entity.Message) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (user_id, content, is_bot, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.UserID, m.Content, m.IsBot, m.Metadata)
	return row.Scan(&m.ID, &m.Timestamp)
}

func (s *RecordStore) ListMessagesByOwner(ctx context.Context, userID int64) ([]entity.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, content, is_bot, metadata, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.CollectableRow) (entity.Message, error) {
		var m entity.Message
		err := row.Scan(&m.ID, &m.UserID, &m.Content, &m.IsBot, &m.Metadata, &m.Timestamp)
		return m, err
	})
}

func (s *RecordStore) CreateMood(ctx context.Context, m *entity.Mood) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO moods (user_id, score, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.UserID, m.Score, m.Note)
	return row.Scan(&m.ID, &m.Timestamp)
}

func (s *RecordStore) ListMoodsByOwner(ctx context.Context, userID int64) ([]entity.Mood, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, score, note, created_at
		FROM moods
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.CollectableRow) (entity.Mood, error) {
		var m entity.Mood
		err := row.Scan(&m.ID, &m.UserID, &m.Score, &m.Note, &m.Timestamp)
		return m, err
	})
}

func (s *RecordStore) CreateSocialMediaPost(ctx context.Context, p *entity.SocialMediaPost) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO social_media_posts (user_id, content, platform, sentiment_score, distress_level, is_urgent, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, p.UserID, p.Content, p.Platform, p.SentimentScore, p.DistressLevel, p.IsUrgent, p.Metadata)
	return row.Scan(&p.ID, &p.Timestamp)
}

const selectPosts = `
	SELECT id, user_id, content, platform, sentiment_score, distress_level, is_urgent, metadata, created_at
	FROM social_media_posts
`

func (s *RecordStore) ListSocialMediaPostsByOwner(ctx context.Context, userID int64) ([]entity.SocialMediaPost, error) {
	return s.queryPosts(ctx, selectPosts+`WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (s *RecordStore) ListUrgentSocialMediaPostsByOwner(ctx context.Context, userID int64) ([]entity.SocialMediaPost, error) {
	return s.queryPosts(ctx, selectPosts+`WHERE user_id = $1 AND is_urgent ORDER BY created_at DESC, id DESC`, userID)
}

func (s *RecordStore) GetSocialMediaPostsByIDs(ctx context.Context, userID int64, ids []int64) ([]entity.SocialMediaPost, error) {
	if len(ids) == 0 {
		return []entity.SocialMediaPost{}, nil
	}
	return s.queryPosts(ctx, selectPosts+`WHERE user_id = $1 AND id = ANY($2) ORDER BY created_at DESC, id DESC`, userID, ids)
}

func (s *RecordStore) queryPosts(ctx context.Context, sql string, args ...any) ([]entity.SocialMediaPost, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row pgx.CollectableRow) (entity.SocialMediaPost, error) {
		var p entity.SocialMediaPost
		err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.Platform, &p.SentimentScore,
			&p.DistressLevel, &p.IsUrgent, &p.Metadata, &p.Timestamp)
		return p, err
	})
}

// collect never returns a nil slice for an empty result.
func collect[T any](rows pgx.Rows, fn pgx.RowToFunc[T]) ([]T, error) {
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

var _ repository.RecordStore = (*RecordStore)(nil)
