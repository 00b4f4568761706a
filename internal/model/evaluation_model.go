package model

import (
	"errors"
	"fmt"
	"time"
)

// Criterion is one of the five fixed rubric dimensions.
type Criterion string

const (
	CriterionProblem       Criterion = "problem"
	CriterionSolution      Criterion = "solution"
	CriterionBusinessModel Criterion = "businessModel"
	CriterionFinancials    Criterion = "financials"
	CriterionDelivery      Criterion = "delivery"
)

// Criteria lists every criterion in report order.
var Criteria = []Criterion{
	CriterionProblem,
	CriterionSolution,
	CriterionBusinessModel,
	CriterionFinancials,
	CriterionDelivery,
}

// ParseCriterion accepts the canonical key of a criterion.
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range Criteria {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown criterion %q", s)
}

// ScoringSource records which scorer produced a result.
type ScoringSource string

const (
	SourceModel     ScoringSource = "model"
	SourceHeuristic ScoringSource = "heuristic"
)

var ErrMissingCriterion = errors.New("missing criterion")

type Section struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
}

type EvaluationResult struct {
	Overall        float64               `json:"overall"`
	Sections       map[Criterion]Section `json:"sections"`
	Source         ScoringSource         `json:"source"`
	FallbackReason string                `json:"fallback_reason,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// Section returns the section for c and whether it was present.
func (r *EvaluationResult) Section(c Criterion) (Section, bool) {
	s, ok := r.Sections[c]
	return s, ok
}

// Scores flattens the section scores into a criterion map.
func (r *EvaluationResult) Scores() map[Criterion]float64 {
	scores := make(map[Criterion]float64, len(r.Sections))
	for c, s := range r.Sections {
		scores[c] = s.Score
	}
	return scores
}

// Validate checks that all five criteria are present and scored within [0, 100].
func (r *EvaluationResult) Validate() error {
	for _, c := range Criteria {
		s, ok := r.Sections[c]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingCriterion, c)
		}
		if s.Score < 0 || s.Score > 100 {
			return fmt.Errorf("criterion %s: score %.1f out of range", c, s.Score)
		}
	}
	return nil
}
