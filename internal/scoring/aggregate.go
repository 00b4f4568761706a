package scoring

import (
	"fmt"
	"math"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// Aggregate returns the weighted overall score. Every criterion must be present.
func Aggregate(scores map[model.Criterion]float64) (float64, error) {
	var overall float64
	for _, c := range model.Criteria {
		s, ok := scores[c]
		if !ok {
			return 0, fmt.Errorf("aggregate: %w: %s", model.ErrMissingCriterion, c)
		}
		overall += Weights[c] * s
	}
	return overall, nil
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// finalize rounds every section score, then sets the overall from the rounded scores.
func finalize(result *model.EvaluationResult) error {
	for c, s := range result.Sections {
		s.Score = Round1(clamp(s.Score, 0, 100))
		result.Sections[c] = s
	}
	overall, err := Aggregate(result.Scores())
	if err != nil {
		return err
	}
	result.Overall = Round1(overall)
	return result.Validate()
}
