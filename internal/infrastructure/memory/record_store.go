// Package memory holds process-local implementations of the repository ports.
// They are not persistent and suit development, tests and single-process deployments.
package memory

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

// table is an arena of records of one kind, indexed by owner in insertion order.
type table[T any] struct {
	rows    map[int64]T
	byOwner map[int64][]int64
}

func newTable[T any]() *table[T] {
	return &table[T]{
		rows:    make(map[int64]T),
		byOwner: make(map[int64][]int64),
	}
}

func (t *table[T]) insert(id, owner int64, row T) {
	t.rows[id] = row
	t.byOwner[owner] = append(t.byOwner[owner], id)
}

// ascending returns copies of the owner's rows oldest first.
func (t *table[T]) ascending(owner int64) []T {
	ids := t.byOwner[owner]
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// descending returns copies of the owner's rows newest first, keeping only those keep accepts.
func (t *table[T]) descending(owner int64, keep func(T) bool) []T {
	ids := t.byOwner[owner]
	out := make([]T, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		row := t.rows[ids[i]]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// RecordStore keeps messages, moods and social posts in memory.
//
// A single counter hands out IDs for every kind, so IDs are unique across the
// process. Writes take the store lock around ID and timestamp assignment, which
// keeps per-owner insertion order identical to ID and timestamp order.
type RecordStore struct {
	mu     sync.RWMutex
	nextID atomic.Int64
	last   time.Time
	now    func() time.Time

	messages *table[entity.Message]
	moods    *table[entity.Mood]
	posts    *table[entity.SocialMediaPost]
}

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		now:      time.Now,
		messages: newTable[entity.Message](),
		moods:    newTable[entity.Mood](),
		posts:    newTable[entity.SocialMediaPost](),
	}
}

// stamp returns the next ID and a timestamp never earlier than the previous one.
// Callers hold s.mu.
func (s *RecordStore) stamp() (int64, time.Time) {
	ts := s.now().UTC()
	if ts.Before(s.last) {
		ts = s.last
	}
	s.last = ts
	return s.nextID.Add(1), ts
}

func (s *RecordStore) CreateMessage(_ context.Context, m *entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID, m.Timestamp = s.stamp()
	row := *m
	row.Metadata = cloneMessageMetadata(m.Metadata)
	s.messages.insert(row.ID, row.UserID, row)
	return nil
}

func (s *RecordStore) ListMessagesByOwner(_ context.Context, userID int64) ([]entity.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.messages.ascending(userID)
	for i := range out {
		out[i].Metadata = cloneMessageMetadata(out[i].Metadata)
	}
	return out, nil
}

func (s *RecordStore) CreateMood(_ context.Context, m *entity.Mood) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID, m.Timestamp = s.stamp()
	row := *m
	if m.Note != nil {
		note := *m.Note
		row.Note = &note
	}
	s.moods.insert(row.ID, row.UserID, row)
	return nil
}

func (s *RecordStore) ListMoodsByOwner(_ context.Context, userID int64) ([]entity.Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.moods.ascending(userID), nil
}

func (s *RecordStore) CreateSocialMediaPost(_ context.Context, p *entity.SocialMediaPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID, p.Timestamp = s.stamp()
	row := *p
	row.Metadata = clonePostMetadata(p.Metadata)
	s.posts.insert(row.ID, row.UserID, row)
	return nil
}

func (s *RecordStore) ListSocialMediaPostsByOwner(_ context.Context, userID int64) ([]entity.SocialMediaPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePosts(s.posts.descending(userID, nil)), nil
}

func (s *RecordStore) ListUrgentSocialMediaPostsByOwner(_ context.Context, userID int64) ([]entity.SocialMediaPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urgent := func(p entity.SocialMediaPost) bool { return p.IsUrgent }
	return clonePosts(s.posts.descending(userID, urgent)), nil
}

func (s *RecordStore) GetSocialMediaPostsByIDs(_ context.Context, userID int64, ids []int64) ([]entity.SocialMediaPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := func(p entity.SocialMediaPost) bool { return slices.Contains(ids, p.ID) }
	return clonePosts(s.posts.descending(userID, want)), nil
}

func cloneMessageMetadata(md *entity.MessageMetadata) *entity.MessageMetadata {
	if md == nil {
		return nil
	}
	c := *md
	c.Topics = slices.Clone(md.Topics)
	c.SuggestedResources = slices.Clone(md.SuggestedResources)
	return &c
}

func clonePostMetadata(md *entity.PostMetadata) *entity.PostMetadata {
	if md == nil {
		return nil
	}
	c := *md
	c.Topics = slices.Clone(md.Topics)
	c.SuggestedResources = slices.Clone(md.SuggestedResources)
	c.Platform = slices.Clone(md.Platform)
	return &c
}

func clonePosts(in []entity.SocialMediaPost) []entity.SocialMediaPost {
	for i := range in {
		in[i].Metadata = clonePostMetadata(in[i].Metadata)
	}
	return in
}

var _ repository.RecordStore = (*RecordStore)(nil)
