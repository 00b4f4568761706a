package model

import (
	"time"

	"github.com/google/uuid"
)

// Session holds one evaluation for the duration of a display session.
type Session struct {
	ID               uuid.UUID         `json:"id"`
	PresentationName string            `json:"presentation_name"`
	AudioName        string            `json:"audio_name"`
	Result           *EvaluationResult `json:"result"`
	CurrentSection   Criterion         `json:"current_section"`
	CreatedAt        time.Time         `json:"created_at"`
	ExpiresAt        time.Time         `json:"expires_at"`
}
