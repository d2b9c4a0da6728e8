package application

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
)

func history(n int) []entity.Message {
	out := make([]entity.Message, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, entity.Message{ID: int64(i), Content: fmt.Sprintf("m%d", i), IsBot: i%2 == 0})
	}
	return out
}

func TestBuildChatContext_KeepsLastWindow(t *testing.T) {
	got := BuildChatContext(history(12), "new one", 5)
	lines := strings.Split(got, "\n")
	want := []string{
		"Assistant: m8",
		"User: m9",
		"Assistant: m10",
		"User: m11",
		"Assistant: m12",
		"User: new one",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: want %q got %q", i, want[i], lines[i])
		}
	}
}

func TestBuildChatContext_ShortHistory(t *testing.T) {
	got := BuildChatContext(history(2), "hi", 5)
	if got != "User: m1\nAssistant: m2\nUser: hi" {
		t.Fatalf("unexpected context %q", got)
	}
	if got := BuildChatContext(nil, "hi", 5); got != "User: hi" {
		t.Fatalf("unexpected context for empty history %q", got)
	}
}

func TestBuildChatContext_InvalidWindowUsesDefault(t *testing.T) {
	got := BuildChatContext(history(9), "x", 0)
	if n := strings.Count(got, "\n"); n != DefaultChatWindow {
		t.Fatalf("expected %d history lines, got %d", DefaultChatWindow, n)
	}
}

func TestBuildAnalysisDirective(t *testing.T) {
	note := "rough day"
	day := time.Date(2024, 2, 3, 15, 0, 0, 0, time.UTC)
	moods := []entity.Mood{
		{Score: 3, Note: &note, Timestamp: day},
		{Score: 7, Timestamp: day.Add(24 * time.Hour)},
	}
	got := BuildAnalysisDirective(moods)

	first := "Date: 2024-02-03, Score: 3/10, Note: rough day"
	second := "Date: 2024-02-04, Score: 7/10\n"
	if !strings.Contains(got, first) || !strings.Contains(got, second) {
		t.Fatalf("mood lines missing:\n%s", got)
	}
	if strings.Index(got, first) > strings.Index(got, second) {
		t.Fatalf("moods must keep their input order")
	}
	for _, section := range []string{"Pattern Analysis", "Professional Insights", "Recommendations", "Areas of Concern"} {
		if !strings.Contains(got, section) {
			t.Errorf("directive missing section %q", section)
		}
	}
}

func TestBuildAnalysisDirective_NeverTruncates(t *testing.T) {
	moods := make([]entity.Mood, 500)
	for i := range moods {
		moods[i] = entity.Mood{Score: i%10 + 1}
	}
	got := BuildAnalysisDirective(moods)
	if n := strings.Count(got, "Score: "); n != 500 {
		t.Fatalf("expected 500 mood lines, got %d", n)
	}
}
