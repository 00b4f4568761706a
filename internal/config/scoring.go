package config

import (
	"os"
	"strings"
	"sync"
	"time"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderHeuristic  = "heuristic"
)

type ScoringConfig struct {
	Provider        string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
	JitterEnabled   bool
	JitterSeed      uint64 // 0 seeds from the clock
}

var (
	scoringConfig *ScoringConfig
	scoringOnce   sync.Once
)

func LoadScoringConfig() *ScoringConfig {
	scoringOnce.Do(func() {
		provider := strings.ToLower(strings.TrimSpace(os.Getenv("SCORER_PROVIDER")))
		switch provider {
		case ProviderGemini, ProviderOpenRouter, ProviderHeuristic:
		default:
			provider = ProviderGemini
		}
		scoringConfig = &ScoringConfig{
			Provider:        provider,
			Timeout:         time.Duration(intEnv("SCORER_TIMEOUT_SECONDS", 45)) * time.Second,
			Temperature:     floatEnv("SCORER_TEMPERATURE", 0.2),
			MaxOutputTokens: intEnv("SCORER_MAX_OUTPUT_TOKENS", 4096),
			JitterEnabled:   boolEnv("SCORER_JITTER", true),
			JitterSeed:      uint64(intEnv("SCORER_JITTER_SEED", 0)),
		}
	})
	return scoringConfig
}
