package scoring

import (
	"context"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// Scorer evaluates a pitch from its presentation text and transcript.
type Scorer interface {
	Score(ctx context.Context, presentation, transcript string) (*model.EvaluationResult, error)
}
