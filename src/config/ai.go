package config

import "os"

const (
	defaultOpenAIModel = "gpt-4.1-mini"
	defaultClaudeModel = "claude-haiku-4-5"
)

// AIConfig holds AI-related configuration
type AIConfig struct {
	Provider      string
	OpenAIKey     string
	ClaudeKey     string
	Model         string
	BaseURL       string
	MaxTokens     int
	RetryAttempts int
}

// LoadAIConfig loads AI configuration from settings with env fallback.
func LoadAIConfig() AIConfig {
	provider := GetSetting("ai_provider", "AI_PROVIDER", "openai")
	model := GetSetting("ai_model", "AI_MODEL", "")
	if model == "" {
		model = defaultModelFor(provider)
	}

	return AIConfig{
		Provider:      provider,
		OpenAIKey:     GetSetting("openai_api_key", "OPENAI_API_KEY", ""),
		ClaudeKey:     GetSetting("claude_api_key", "CLAUDE_API_KEY", ""),
		Model:         model,
		BaseURL:       GetSetting("ai_base_url", "AI_BASE_URL", ""),
		MaxTokens:     getIntSetting("ai_max_tokens", "AI_MAX_TOKENS", 5000),
		RetryAttempts: getIntSetting("ai_retry_attempts", "AI_RETRY_ATTEMPTS", 1),
	}
}

// LoadAIFromEnv provides an env-only loader for tools that run without a database.
func LoadAIFromEnv() AIConfig {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = defaultModelFor(provider)
	}
	return AIConfig{
		Provider:      provider,
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		Model:         model,
		BaseURL:       os.Getenv("AI_BASE_URL"),
		MaxTokens:     5000,
		RetryAttempts: 1,
	}
}

func defaultModelFor(provider string) string {
	if provider == "claude" || provider == "anthropic" {
		return defaultClaudeModel
	}
	return defaultOpenAIModel
}
