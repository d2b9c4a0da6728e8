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
)

// NoMoodDataMessage is returned when an analysis is requested over an empty series.
const NoMoodDataMessage = "No mood data available for analysis"

// AnalysisArchiver keeps a copy of each completed analysis.
type AnalysisArchiver interface {
	Archive(ctx context.Context, userID int64, analysis string) (string, error)
}

type MoodService struct {
	Store    repository.RecordStore
	Gateway  repository.CompletionGateway
	Options  repository.CompletionOptions
	Archiver AnalysisArchiver // optional
	Timeout  time.Duration
	Logger   *logrus.Logger
}

func NewMoodService(store repository.RecordStore, gw repository.CompletionGateway, opts repository.CompletionOptions, archiver AnalysisArchiver, timeout time.Duration, logger *logrus.Logger) *MoodService {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &MoodService{Store: store, Gateway: gw, Options: opts, Archiver: archiver, Timeout: timeout, Logger: logger}
}

// Create validates the score range and stores the mood. Blank notes are dropped.
func (s *MoodService) Create(ctx context.Context, userID int64, score int, note *string) (*entity.Mood, error) {
	if score < entity.MinMoodScore || score > entity.MaxMoodScore {
		return nil, apperr.Validation("score", "score must be between 1 and 10")
	}
	m := &entity.Mood{UserID: userID, Score: score}
	if note != nil && strings.TrimSpace(*note) != "" {
		n := *note
		m.Note = &n
	}
	if err := s.Store.CreateMood(ctx, m); err != nil {
		return nil, fmt.Errorf("create mood: %w", err)
	}
	return m, nil
}

func (s *MoodService) List(ctx context.Context, userID int64) ([]entity.Mood, error) {
	moods, err := s.Store.ListMoodsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	return moods, nil
}

// Analyze sends the full mood history to the completion service and returns its text verbatim.
func (s *MoodService) Analyze(ctx context.Context, userID int64) (string, error) {
	moods, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(moods) == 0 {
		return "", &apperr.InsufficientDataError{Message: NoMoodDataMessage}
	}

	gctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	text, err := s.Gateway.Complete(gctx, BuildAnalysisDirective(moods), s.Options)
	if err != nil {
		status, body := apperr.UpstreamDetails(err)
		s.log().WithError(err).WithFields(logrus.Fields{
			"user_id":         userID,
			"moods":           len(moods),
			"upstream_status": status,
			"upstream_body":   body,
		}).Error("mood analysis failed")
		return "", fmt.Errorf("analyze moods: %w", err)
	}

	if s.Archiver != nil {
		if url, aErr := s.Archiver.Archive(ctx, userID, text); aErr != nil {
			s.log().WithError(aErr).WithField("user_id", userID).Warn("archive analysis failed")
		} else {
			s.log().WithFields(logrus.Fields{"user_id": userID, "object": url}).Debug("analysis archived")
		}
	}
	return text, nil
}

func (s *MoodService) log() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
