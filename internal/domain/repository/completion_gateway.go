package repository

import "context"

// HarmCategory names a content-safety category understood by the completion service.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// SafetySetting thresholds one harm category, e.g. BLOCK_MEDIUM_AND_ABOVE.
type SafetySetting struct {
	Category  HarmCategory
	Threshold string
}

// CompletionOptions configures one completion call.
type CompletionOptions struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
	Safety          []SafetySetting
}

// CompletionGateway submits a directive to the external text-completion service.
// Implementations perform no retries and return *apperr.GatewayError or
// *apperr.MalformedResponseError on failure.
type CompletionGateway interface {
	Complete(ctx context.Context, directive string, opts CompletionOptions) (string, error)
}
