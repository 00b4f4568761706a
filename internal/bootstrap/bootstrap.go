// Package bootstrap wires configuration into the evaluation pipeline shared by
// the HTTP server and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/extractor"
	"github.com/fadilmartias/pitch-evaluator/internal/repository"
	"github.com/fadilmartias/pitch-evaluator/internal/scoring"
	"github.com/fadilmartias/pitch-evaluator/internal/service"
	"github.com/fadilmartias/pitch-evaluator/internal/usecase"
)

// NewScorer builds the scorer for the configured provider. A remote provider
// without a credential still returns a model scorer; it falls back to the
// heuristic path on every call and logs the missing credential.
func NewScorer(ctx context.Context, scoringConfig *config.ScoringConfig, logger *slog.Logger) (scoring.Scorer, service.StatusReporter, error) {
	var jitter scoring.Jitter = scoring.NoJitter{}
	if scoringConfig.JitterEnabled {
		jitter = scoring.NewUniformJitter(scoringConfig.JitterSeed)
	}
	heuristic := scoring.NewHeuristicScorer(jitter, logger)

	if scoringConfig.Provider != config.ProviderHeuristic {
		if err := config.SecretsError(); err != nil {
			logger.Warn("ignoring secrets file, reading credentials from the environment", "error", err)
		}
	}

	var (
		generator scoring.TextGenerator
		status    service.StatusReporter
		modelName string
		err       error
	)
	switch scoringConfig.Provider {
	case config.ProviderHeuristic:
		logger.Info("scoring with keyword heuristic only")
		return heuristic, service.StaticStatus{Provider: config.ProviderHeuristic}, nil
	case config.ProviderOpenRouter:
		cfg := config.LoadOpenRouterConfig()
		modelName = cfg.Model
		var svc *service.OpenRouterService
		if svc, err = service.NewOpenRouterService(cfg, scoringConfig, logger); err == nil {
			generator, status = svc, svc
		}
	default:
		cfg := config.LoadGeminiConfig()
		modelName = cfg.Model
		var svc *service.GeminiService
		if svc, err = service.NewGeminiService(ctx, cfg, scoringConfig, logger); err == nil {
			generator, status = svc, svc
		}
	}

	switch {
	case errors.Is(err, config.ErrMissingCredential):
		logger.Warn("missing credential, scoring will use the keyword heuristic",
			"provider", scoringConfig.Provider, "error", err)
		status = service.StaticStatus{Provider: scoringConfig.Provider, Model: modelName}
	case err != nil:
		return nil, nil, fmt.Errorf("init %s scorer: %w", scoringConfig.Provider, err)
	default:
		logger.Info("scoring with remote model", "provider", scoringConfig.Provider, "model", modelName)
	}

	return scoring.NewModelScorer(generator, heuristic, scoringConfig.Timeout, logger), status, nil
}

// NewEvaluationUsecase assembles the pipeline from the process configuration
// and the given scoring settings.
func NewEvaluationUsecase(ctx context.Context, scoringConfig *config.ScoringConfig, logger *slog.Logger) (*usecase.EvaluationUsecase, error) {
	appConfig := config.LoadAppConfig()

	scorer, status, err := NewScorer(ctx, scoringConfig, logger)
	if err != nil {
		return nil, err
	}

	return usecase.NewEvaluationUsecase(
		repository.NewSessionRepository(appConfig.SessionTTL),
		extractor.NewExtractor(config.LoadExtractConfig(), logger),
		extractor.StubTranscriber{},
		scorer,
		status,
		logger,
	), nil
}
