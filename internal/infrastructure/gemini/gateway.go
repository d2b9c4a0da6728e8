// Package gemini talks to the Gemini text-completion API through the genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

// Config selects the endpoint and credential. APIKey must come from the environment.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	Model      string
	HTTPClient *http.Client
}

// Gateway implements repository.CompletionGateway. It performs no retries.
type Gateway struct {
	client *genai.Client
	model  string
}

func NewGateway(ctx context.Context, cfg Config) (*Gateway, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini: model is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gateway{client: client, model: cfg.Model}, nil
}

// Complete sends directive as a single user turn and returns the first candidate's text.
func (g *Gateway) Complete(ctx context.Context, directive string, opts repository.CompletionOptions) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(directive, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, generateConfig(opts))
	if err != nil {
		return "", mapError(err)
	}
	if res == nil || len(res.Candidates) == 0 {
		reason := "no candidates"
		if res != nil && res.PromptFeedback != nil && res.PromptFeedback.BlockReason != "" {
			reason += ": blocked " + string(res.PromptFeedback.BlockReason)
		}
		return "", &apperr.MalformedResponseError{Reason: reason}
	}
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		reason := "empty candidate text"
		if fr := res.Candidates[0].FinishReason; fr != "" {
			reason += ": finish reason " + string(fr)
		}
		return "", &apperr.MalformedResponseError{Reason: reason}
	}
	return text, nil
}

func generateConfig(opts repository.CompletionOptions) *genai.GenerateContentConfig {
	temp := opts.Temperature
	topP := opts.TopP
	topK := float32(opts.TopK)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: int32(opts.MaxOutputTokens),
	}
	for _, s := range opts.Safety {
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return cfg
}

// mapError turns SDK failures into a GatewayError carrying the upstream status and body.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &apperr.GatewayError{StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &apperr.GatewayError{StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message, Err: err}
	}
	return &apperr.GatewayError{Err: err}
}

var _ repository.CompletionGateway = (*Gateway)(nil)
