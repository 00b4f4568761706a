package config

import (
	"os"
	"sync"
)

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		model := os.Getenv("OPENROUTER_MODEL")
		if model == "" {
			model = "openai/gpt-4o-mini"
		}
		baseURL := os.Getenv("OPENROUTER_URL")
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1/chat/completions"
		}
		openRouterConfig = &OpenRouterConfig{
			APIKey:  Credential("OPENROUTER_API_KEY"),
			Model:   model,
			BaseURL: baseURL,
		}
	})
	return openRouterConfig
}
