package dto

import (
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/report"
	"github.com/fadilmartias/pitch-evaluator/internal/scoring"
	"github.com/google/uuid"
)

type SectionDTO struct {
	ID           model.Criterion `json:"id"`
	Label        string          `json:"label"`
	Weight       string          `json:"weight"`
	Score        float64         `json:"score"`
	Rating       string          `json:"rating"`
	Feedback     string          `json:"feedback"`
	Strengths    []string        `json:"strengths,omitempty"`
	Improvements []string        `json:"improvements,omitempty"`
}

type EvaluationDTO struct {
	ID               uuid.UUID           `json:"id"`
	PresentationName string              `json:"presentation_name"`
	AudioName        string              `json:"audio_name"`
	Overall          float64             `json:"overall"`
	Rating           string              `json:"rating"`
	Source           model.ScoringSource `json:"source"`
	FallbackReason   string              `json:"fallback_reason,omitempty"`
	CurrentSection   model.Criterion     `json:"current_section"`
	Sections         []SectionDTO        `json:"sections"`
	CreatedAt        time.Time           `json:"created_at"`
	ExpiresAt        time.Time           `json:"expires_at"`
}

// EvaluationSummaryDTO is the list view of a session.
type EvaluationSummaryDTO struct {
	ID               uuid.UUID           `json:"id"`
	PresentationName string              `json:"presentation_name"`
	Overall          float64             `json:"overall"`
	Rating           string              `json:"rating"`
	Source           model.ScoringSource `json:"source"`
	CreatedAt        time.Time           `json:"created_at"`
}

func NewEvaluationDTO(s *model.Session) EvaluationDTO {
	out := EvaluationDTO{
		ID:               s.ID,
		PresentationName: s.PresentationName,
		AudioName:        s.AudioName,
		Overall:          s.Result.Overall,
		Rating:           report.Rating(s.Result.Overall),
		Source:           s.Result.Source,
		FallbackReason:   s.Result.FallbackReason,
		CurrentSection:   s.CurrentSection,
		CreatedAt:        s.CreatedAt,
		ExpiresAt:        s.ExpiresAt,
	}
	for _, c := range model.Criteria {
		sec := s.Result.Sections[c]
		out.Sections = append(out.Sections, SectionDTO{
			ID:           c,
			Label:        scoring.Label(c),
			Weight:       scoring.WeightLabel(c),
			Score:        sec.Score,
			Rating:       report.Rating(sec.Score),
			Feedback:     sec.Feedback,
			Strengths:    sec.Strengths,
			Improvements: sec.Improvements,
		})
	}
	return out
}

func NewEvaluationSummaryDTO(s model.Session) EvaluationSummaryDTO {
	return EvaluationSummaryDTO{
		ID:               s.ID,
		PresentationName: s.PresentationName,
		Overall:          s.Result.Overall,
		Rating:           report.Rating(s.Result.Overall),
		Source:           s.Result.Source,
		CreatedAt:        s.CreatedAt,
	}
}
