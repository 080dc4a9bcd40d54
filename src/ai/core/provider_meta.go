package core

import (
	"strings"
)

var providerDefaultModels = map[string]string{
	"openai":    "gpt-4.1-mini",
	"gpt41mini": "gpt-4.1-mini",
	"gpt4o":     "gpt-4o",
	"claude":    "claude-haiku-4-5",
	"anthropic": "claude-haiku-4-5",
	"sonnet45":  "claude-sonnet-4-5",
}

// DefaultModelForProvider returns the baked-in default model for a provider key.
func DefaultModelForProvider(provider string) string {
	key := strings.ToLower(strings.TrimSpace(provider))
	if val, ok := providerDefaultModels[key]; ok {
		return val
	}
	return ""
}

// ResolveModelName picks the configured model if provided, otherwise the provider's default.
func ResolveModelName(provider, configuredModel string) string {
	model := strings.TrimSpace(configuredModel)
	if model != "" {
		return model
	}
	if def := DefaultModelForProvider(provider); def != "" {
		return def
	}
	return "unknown"
}
