package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

const testKey = "test-key"

func testOptions() repository.CompletionOptions {
	return repository.CompletionOptions{
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 1024,
		Safety: []repository.SafetySetting{
			{Category: repository.HarmHarassment, Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: repository.HarmHateSpeech, Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: repository.HarmSexuallyExplicit, Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: repository.HarmDangerousContent, Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}
}

func newTestGateway(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	gw, err := NewGateway(context.Background(), Config{
		APIKey:     testKey,
		BaseURL:    srv.URL + "/",
		APIVersion: "v1beta",
		Model:      "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("NewGateway failed: %v", err)
	}
	return gw
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestGateway_CompleteSendsDirectiveAndOptions(t *testing.T) {
	var gotBody string
	var gotPath, gotKey string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"hello there"}]},"finishReason":"STOP"}]}`)
	})

	out, err := gw.Complete(context.Background(), "User: hi", testOptions())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "hello there" {
		t.Fatalf("unexpected text %q", out)
	}
	if !strings.HasSuffix(gotPath, ":generateContent") {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != testKey {
		t.Errorf("expected api key header, got %q", gotKey)
	}

	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.Unmarshal([]byte(gotBody), &req); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || req.Contents[0].Parts[0].Text != "User: hi" {
		t.Errorf("directive not sent as a single user part: %s", gotBody)
	}
	for _, want := range []string{"HARM_CATEGORY_HATE_SPEECH", "HARM_CATEGORY_DANGEROUS_CONTENT", "BLOCK_MEDIUM_AND_ABOVE"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("request body missing %s: %s", want, gotBody)
		}
	}
}

func TestGateway_NonSuccessStatusIsGatewayError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := gw.Complete(context.Background(), "x", testOptions())
	var ge *apperr.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %T %v", err, err)
	}
	if ge.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", ge.StatusCode)
	}
	if !strings.Contains(ge.Body, "API key not valid") {
		t.Errorf("expected upstream body, got %q", ge.Body)
	}
}

func TestGateway_NoCandidatesIsMalformed(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := gw.Complete(context.Background(), "x", testOptions())
	var mr *apperr.MalformedResponseError
	if !errors.As(err, &mr) {
		t.Fatalf("expected MalformedResponseError, got %T %v", err, err)
	}
}

func TestGateway_EmptyTextIsMalformed(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]},"finishReason":"MAX_TOKENS"}]}`)
	})

	_, err := gw.Complete(context.Background(), "x", testOptions())
	var mr *apperr.MalformedResponseError
	if !errors.As(err, &mr) {
		t.Fatalf("expected MalformedResponseError, got %T %v", err, err)
	}
}

func TestGateway_DeadlineIsGatewayError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := gw.Complete(ctx, "x", testOptions())
	var ge *apperr.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %T %v", err, err)
	}
	if ge.StatusCode != 0 {
		t.Errorf("transport failure should carry no status, got %d", ge.StatusCode)
	}
}

func TestNewGateway_RequiresKey(t *testing.T) {
	if _, err := NewGateway(context.Background(), Config{Model: "m"}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
