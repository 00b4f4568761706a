package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"google.golang.org/genai"
)

const (
	defaultBreakerMax      = 5
	defaultBreakerCooldown = time.Minute
)

var ErrCircuitOpen = errors.New("circuit breaker open")

var _ BreakerResetter = (*GeminiService)(nil)

// ProviderStatus describes a remote scoring provider for status reporting.
type ProviderStatus struct {
	Provider          string `json:"provider"`
	Model             string `json:"model"`
	CredentialSet     bool   `json:"credential_set"`
	ConsecutiveErrors int    `json:"consecutive_errors"`
	CircuitOpen       bool   `json:"circuit_open"`
}

// GeminiService calls the Gemini API once per request. Consecutive transient
// failures open a circuit breaker that fails fast until the cooldown passes.
type GeminiService struct {
	Client          *genai.Client
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	logger          *slog.Logger

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
	breakerCooldown   time.Duration
	openedAt          time.Time
}

func NewGeminiService(ctx context.Context, geminiConfig *config.GeminiConfig, scoringConfig *config.ScoringConfig, logger *slog.Logger) (*GeminiService, error) {
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set: %w", config.ErrMissingCredential)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if geminiConfig.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: geminiConfig.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiService{
		Client:            client,
		Model:             geminiConfig.Model,
		Temperature:       float32(scoringConfig.Temperature),
		MaxOutputTokens:   int32(scoringConfig.MaxOutputTokens),
		logger:            logger,
		circuitBreakerMax: defaultBreakerMax,
		breakerCooldown:   defaultBreakerCooldown,
	}, nil
}

// GenerateText implements scoring.TextGenerator.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := s.allow(); err != nil {
		return "", err
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(s.Temperature),
		MaxOutputTokens: s.MaxOutputTokens,
	}

	start := time.Now()
	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), genConfig)
	if err != nil {
		s.recordFailure(err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if err := s.validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}
	s.recordSuccess()

	s.logger.Debug("gemini generate content", "model", s.Model, "latency", time.Since(start))
	return result.Text(), nil
}

func (s *GeminiService) allow() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consecutiveErrors < s.circuitBreakerMax {
		return nil
	}
	if time.Since(s.openedAt) >= s.breakerCooldown {
		// half-open: let one call through
		s.consecutiveErrors = s.circuitBreakerMax - 1
		return nil
	}
	return fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, s.consecutiveErrors)
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.mu.Unlock()
}

func (s *GeminiService) recordFailure(err error) {
	if !isTransientError(err) {
		s.logger.Warn("non-transient gemini error", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveErrors++
	if s.consecutiveErrors == s.circuitBreakerMax {
		s.openedAt = time.Now()
		s.logger.Error("gemini circuit breaker opened", "consecutive_errors", s.consecutiveErrors)
	}
}

// isTransientError reports whether err signals an unhealthy upstream rather
// than a bad request or a caller cancellation.
func isTransientError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if code, ok := apiErrorCode(err); ok {
		return code == 429 || code >= 500
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.mu.Unlock()
	s.logger.Info("circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveErrors, s.consecutiveErrors >= s.circuitBreakerMax
}

func (s *GeminiService) Status() ProviderStatus {
	errs, open := s.GetCircuitBreakerStatus()
	return ProviderStatus{
		Provider:          config.ProviderGemini,
		Model:             s.Model,
		CredentialSet:     true,
		ConsecutiveErrors: errs,
		CircuitOpen:       open,
	}
}
