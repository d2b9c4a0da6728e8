package gemini

import (
	"github.com/oksasatya/moodwatch/config"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

// OptionsFromConfig builds the completion options used for every call.
func OptionsFromConfig(cfg *config.Config) repository.CompletionOptions {
	return repository.CompletionOptions{
		Temperature:     float32(cfg.GeminiTemperature),
		TopP:            float32(cfg.GeminiTopP),
		TopK:            cfg.GeminiTopK,
		MaxOutputTokens: cfg.GeminiMaxOutputTokens,
		Safety: []repository.SafetySetting{
			{Category: repository.HarmHarassment, Threshold: cfg.SafetyHarassment},
			{Category: repository.HarmHateSpeech, Threshold: cfg.SafetyHateSpeech},
			{Category: repository.HarmSexuallyExplicit, Threshold: cfg.SafetySexuallyExplicit},
			{Category: repository.HarmDangerousContent, Threshold: cfg.SafetyDangerousContent},
		},
	}
}
