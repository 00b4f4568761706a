package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const systemPrompt = "You are an experienced startup pitch coach evaluating 4-minute business pitches. Reply with JSON only."

// OpenRouterService sends chat completion requests to an OpenAI-compatible endpoint.
type OpenRouterService struct {
	APIKey          string
	Model           string
	URL             string
	Temperature     float64
	MaxOutputTokens int
	client          *resty.Client
	logger          *slog.Logger
}

func NewOpenRouterService(openRouterConfig *config.OpenRouterConfig, scoringConfig *config.ScoringConfig, logger *slog.Logger) (*OpenRouterService, error) {
	if openRouterConfig.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set: %w", config.ErrMissingCredential)
	}
	return &OpenRouterService{
		APIKey:          openRouterConfig.APIKey,
		Model:           openRouterConfig.Model,
		URL:             openRouterConfig.BaseURL,
		Temperature:     scoringConfig.Temperature,
		MaxOutputTokens: scoringConfig.MaxOutputTokens,
		client:          resty.New(),
		logger:          logger,
	}, nil
}

// GenerateText implements scoring.TextGenerator.
func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": prompt},
			},
			"temperature": s.Temperature,
			"max_tokens":  s.MaxOutputTokens,
		}).
		Post(s.URL)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}

	s.logger.Debug("openrouter chat completion", "model", s.Model, "latency", time.Since(start))
	return text, nil
}

func (s *OpenRouterService) Status() ProviderStatus {
	return ProviderStatus{
		Provider:      config.ProviderOpenRouter,
		Model:         s.Model,
		CredentialSet: true,
	}
}
