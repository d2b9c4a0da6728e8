package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/internal/infrastructure/memory"
)

func TestMoodService_CreateValidatesRange(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	svc := NewMoodService(store, &fakeGateway{}, repository.CompletionOptions{}, nil, time.Second, nil)

	for _, score := range []int{0, 11, -3} {
		_, err := svc.Create(ctx, 1, score, nil)
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("score %d: expected ValidationError, got %v", score, err)
		}
	}
	moods, _ := store.ListMoodsByOwner(ctx, 1)
	if len(moods) != 0 {
		t.Fatalf("rejected moods must not be stored, got %d", len(moods))
	}

	blank := "  "
	for _, score := range []int{1, 10} {
		m, err := svc.Create(ctx, 1, score, &blank)
		if err != nil {
			t.Fatalf("score %d rejected: %v", score, err)
		}
		if m.Note != nil {
			t.Fatalf("blank note should be dropped")
		}
	}
}

func TestMoodService_AnalyzeEmptyHistory(t *testing.T) {
	gw := &fakeGateway{reply: "x"}
	svc := NewMoodService(memory.NewRecordStore(), gw, repository.CompletionOptions{}, nil, time.Second, nil)

	_, err := svc.Analyze(context.Background(), 1)
	var ie *apperr.InsufficientDataError
	if !errors.As(err, &ie) || ie.Message != NoMoodDataMessage {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if len(gw.calls()) != 0 {
		t.Fatalf("gateway must not be called for an empty series")
	}
}

func TestMoodService_AnalyzeReturnsVerbatimAndArchives(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	gw := &fakeGateway{reply: "  ## Pattern Analysis\nsteady  "}
	arch := &fakeArchiver{}
	svc := NewMoodService(store, gw, repository.CompletionOptions{}, arch, time.Second, nil)

	note := "slept badly"
	_, _ = svc.Create(ctx, 4, 3, &note)
	_, _ = svc.Create(ctx, 4, 6, nil)

	got, err := svc.Analyze(ctx, 4)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got != gw.reply {
		t.Fatalf("analysis must be returned verbatim, got %q", got)
	}
	directive := gw.calls()[0]
	if !strings.Contains(directive, "Score: 3/10, Note: slept badly") || !strings.Contains(directive, "Score: 6/10") {
		t.Fatalf("directive missing moods:\n%s", directive)
	}
	if arch.userID != 4 || arch.analysis != gw.reply {
		t.Fatalf("analysis not archived: %+v", arch)
	}
}

func TestMoodService_AnalyzeSurfacesGatewayErrors(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	gw := &fakeGateway{err: &apperr.GatewayError{StatusCode: 500, Body: "internal"}}
	arch := &fakeArchiver{}
	svc := NewMoodService(store, gw, repository.CompletionOptions{}, arch, time.Second, nil)
	_, _ = svc.Create(ctx, 1, 5, nil)

	_, err := svc.Analyze(ctx, 1)
	var ge *apperr.GatewayError
	if !errors.As(err, &ge) || ge.StatusCode != 500 {
		t.Fatalf("expected wrapped GatewayError, got %v", err)
	}
	if arch.analysis != "" {
		t.Fatalf("failed analyses must not be archived")
	}
}

func TestMoodService_ArchiveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	svc := NewMoodService(store, &fakeGateway{reply: "fine"}, repository.CompletionOptions{}, &fakeArchiver{err: errors.New("gcs down")}, time.Second, nil)
	_, _ = svc.Create(ctx, 1, 5, nil)

	if got, err := svc.Analyze(ctx, 1); err != nil || got != "fine" {
		t.Fatalf("expected analysis despite archive failure, got %q %v", got, err)
	}
}
