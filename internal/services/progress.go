package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"formacao-backend/internal/models"
	"formacao-backend/internal/repository"
)

type ProgressService struct {
	progressRepo *repository.ProgressRepo
	trainingRepo *repository.TrainingRepo
}

func NewProgressService(progressRepo *repository.ProgressRepo, trainingRepo *repository.TrainingRepo) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, trainingRepo: trainingRepo}
}

// MarkWatched records that the user finished the training media. This is
// the only write path for the watched flag.
func (s *ProgressService) MarkWatched(ctx context.Context, userID, trainingID uuid.UUID) error {
	if _, err := s.trainingRepo.GetByID(ctx, trainingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Training not found"}
		}
		return fmt.Errorf("failed to load training: %w", err)
	}

	return s.progressRepo.MarkWatched(ctx, userID, trainingID)
}

// List returns the caller's progress records with the derived status the
// UI renders.
func (s *ProgressService) List(ctx context.Context, userID uuid.UUID) ([]models.ProgressWithStatus, error) {
	records, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	result := make([]models.ProgressWithStatus, len(records))
	for i, p := range records {
		result[i] = models.ProgressWithStatus{Progress: *p, Status: models.GetTrainingStatus(p)}
	}
	return result, nil
}

// GetForTraining returns one training's progress with derived status; a
// missing record reads as not started.
func (s *ProgressService) GetForTraining(ctx context.Context, userID, trainingID uuid.UUID) (*models.ProgressWithStatus, error) {
	p, err := s.progressRepo.Get(ctx, userID, trainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	result := &models.ProgressWithStatus{Status: models.GetTrainingStatus(p)}
	if p != nil {
		result.Progress = *p
	} else {
		result.UserID = userID
		result.TrainingID = trainingID
	}
	return result, nil
}
