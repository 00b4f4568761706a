package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// TextGenerator is a remote text-generation service.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Fallback reasons recorded on results produced by the heuristic path.
const (
	ReasonMissingCredential = "missing credential"
	ReasonTimeout           = "timeout"
	ReasonServiceError      = "service error"
	ReasonParseError        = "parse error"
)

// ModelScorer asks a remote model to score the pitch and falls back to
// another scorer on any failure. The remote call is never retried.
type ModelScorer struct {
	generator TextGenerator
	fallback  Scorer
	timeout   time.Duration
	logger    *slog.Logger
}

// NewModelScorer builds a model scorer. A nil generator means no credential
// was configured; every call then goes straight to the fallback.
func NewModelScorer(generator TextGenerator, fallback Scorer, timeout time.Duration, logger *slog.Logger) *ModelScorer {
	return &ModelScorer{
		generator: generator,
		fallback:  fallback,
		timeout:   timeout,
		logger:    logger,
	}
}

// Score implements Scorer.
func (s *ModelScorer) Score(ctx context.Context, presentation, transcript string) (*model.EvaluationResult, error) {
	if s.generator == nil {
		return s.fallbackScore(ctx, presentation, transcript, ReasonMissingCredential, config.ErrMissingCredential)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.generator.GenerateText(callCtx, BuildPrompt(presentation, transcript))
	if err != nil {
		reason := ReasonServiceError
		switch {
		case errors.Is(err, config.ErrMissingCredential):
			reason = ReasonMissingCredential
		case errors.Is(err, context.DeadlineExceeded):
			reason = ReasonTimeout
		}
		return s.fallbackScore(ctx, presentation, transcript, reason, err)
	}

	result, err := ParseModelReply(reply, s.logger)
	if err != nil {
		return s.fallbackScore(ctx, presentation, transcript, ReasonParseError, err)
	}

	s.logger.Info("model scoring complete", "overall", result.Overall, "latency", time.Since(start))
	return result, nil
}

func (s *ModelScorer) fallbackScore(ctx context.Context, presentation, transcript, reason string, cause error) (*model.EvaluationResult, error) {
	if reason == ReasonMissingCredential {
		s.logger.Warn("missing credential, using heuristic scorer", "error", cause)
	} else {
		s.logger.Error("model scoring failed, using heuristic scorer", "reason", reason, "error", cause)
	}

	result, err := s.fallback.Score(ctx, presentation, transcript)
	if err != nil {
		return nil, fmt.Errorf("fallback scoring: %w", err)
	}
	result.FallbackReason = reason
	return result, nil
}
