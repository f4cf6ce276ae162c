package models

import (
	"time"

	"github.com/google/uuid"
)

// Progress is the single per-user, per-training record the UI reads to
// render status labels. Submissions merge into it; the watched flag is
// only ever written by the watched endpoint.
type Progress struct {
	UserID      uuid.UUID  `json:"user_id"`
	TrainingID  uuid.UUID  `json:"training_id"`
	Watched     bool       `json:"watched"`
	Score       *int       `json:"score"`
	Passed      bool       `json:"passed"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TrainingStatus string

const (
	StatusNotStarted TrainingStatus = "not_started"
	StatusInProgress TrainingStatus = "in_progress"
	StatusFailed     TrainingStatus = "failed"
	StatusPassed     TrainingStatus = "passed"
)

// GetTrainingStatus derives the UI status from a progress record.
func GetTrainingStatus(p *Progress) TrainingStatus {
	if p == nil {
		return StatusNotStarted
	}
	if !p.Watched {
		return StatusInProgress
	}
	if p.Score == nil {
		return StatusInProgress
	}
	if p.Passed {
		return StatusPassed
	}
	return StatusFailed
}

type ProgressWithStatus struct {
	Progress
	Status TrainingStatus `json:"status"`
}
