// Package search indexes social posts in Elasticsearch for owner-scoped full-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type PostIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewPostIndex(es *elasticsearch.Client, index string) *PostIndex {
	return &PostIndex{es: es, index: index}
}

type postDoc struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Content        string    `json:"content"`
	Platform       string    `json:"platform"`
	SentimentScore int       `json:"sentiment_score"`
	DistressLevel  int       `json:"distress_level"`
	IsUrgent       bool      `json:"is_urgent"`
	Topics         []string  `json:"topics,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// IndexPost upserts the post document keyed by its id.
func (p *PostIndex) IndexPost(ctx context.Context, post entity.SocialMediaPost) error {
	doc := postDoc{
		ID:             post.ID,
		UserID:         post.UserID,
		Content:        post.Content,
		Platform:       post.Platform,
		SentimentScore: post.SentimentScore,
		DistressLevel:  post.DistressLevel,
		IsUrgent:       post.IsUrgent,
		CreatedAt:      post.Timestamp,
	}
	if post.Metadata != nil {
		doc.Topics = post.Metadata.Topics
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.IndexRequest{
		Index:      p.index,
		DocumentID: strconv.FormatInt(post.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	res, err := req.Do(c, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index post %d: %s", post.ID, res.Status())
	}
	return nil
}

// SearchPostIDs runs a match query on content and topics, restricted to the owner.
func (p *PostIndex) SearchPostIDs(ctx context.Context, userID int64, q string, size int) ([]int64, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"content^2", "topics"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"_source": []string{"id"},
		"size":    size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := p.es.Search(
		p.es.Search.WithContext(c),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}
