package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"formacao-backend/internal/models"
	"formacao-backend/internal/repository"
)

// ContentService manages the training catalog: brands and trainings.
// Reads are open to any signed-in user; writes are admin-only and gated
// at the router.
type ContentService struct {
	brandRepo    *repository.BrandRepo
	trainingRepo *repository.TrainingRepo
}

func NewContentService(brandRepo *repository.BrandRepo, trainingRepo *repository.TrainingRepo) *ContentService {
	return &ContentService{brandRepo: brandRepo, trainingRepo: trainingRepo}
}

func (s *ContentService) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	return s.brandRepo.List(ctx)
}

func (s *ContentService) CreateBrand(ctx context.Context, req *models.SaveBrandRequest) (*models.Brand, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "Name is required"}}
	}

	brand := &models.Brand{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (s *ContentService) UpdateBrand(ctx context.Context, id uuid.UUID, req *models.SaveBrandRequest) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Brand not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "Name is required"}}
	}

	brand.Name = strings.TrimSpace(req.Name)
	brand.Description = req.Description
	brand.SortOrder = req.SortOrder

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return brand, nil
}

func (s *ContentService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Brand not found"}
		}
		return fmt.Errorf("failed to load brand: %w", err)
	}
	return s.brandRepo.Delete(ctx, id)
}

func (s *ContentService) ListTrainings(ctx context.Context, brandID uuid.UUID) ([]*models.Training, error) {
	return s.trainingRepo.ListByBrand(ctx, brandID)
}

func (s *ContentService) GetTraining(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Training not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load training: %w", err)
	}
	return training, nil
}

func (s *ContentService) CreateTraining(ctx context.Context, req *models.SaveTrainingRequest) (*models.Training, error) {
	if err := s.validateTrainingRequest(ctx, req); err != nil {
		return nil, err
	}

	mediaJSON, err := json.Marshal(req.MediaFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media files: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	training := &models.Training{
		BrandID:        req.BrandID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		MediaFilesJSON: mediaJSON,
		ThumbnailURL:   req.ThumbnailURL,
		IsActive:       isActive,
	}
	if err := s.trainingRepo.Create(ctx, training); err != nil {
		return nil, fmt.Errorf("failed to create training: %w", err)
	}
	return training, nil
}

func (s *ContentService) UpdateTraining(ctx context.Context, id uuid.UUID, req *models.SaveTrainingRequest) (*models.Training, error) {
	training, err := s.GetTraining(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateTrainingRequest(ctx, req); err != nil {
		return nil, err
	}

	mediaJSON, err := json.Marshal(req.MediaFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media files: %w", err)
	}

	training.BrandID = req.BrandID
	training.Title = strings.TrimSpace(req.Title)
	training.Description = req.Description
	training.MediaFilesJSON = mediaJSON
	training.ThumbnailURL = req.ThumbnailURL
	if req.IsActive != nil {
		training.IsActive = *req.IsActive
	}

	if err := s.trainingRepo.Update(ctx, training); err != nil {
		return nil, fmt.Errorf("failed to update training: %w", err)
	}
	return training, nil
}

func (s *ContentService) DeleteTraining(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTraining(ctx, id); err != nil {
		return err
	}
	return s.trainingRepo.Delete(ctx, id)
}

func (s *ContentService) validateTrainingRequest(ctx context.Context, req *models.SaveTrainingRequest) error {
	fields := make(map[string]string)

	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if req.BrandID == uuid.Nil {
		fields["brand_id"] = "Brand is required"
	} else if _, err := s.brandRepo.GetByID(ctx, req.BrandID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fields["brand_id"] = "Brand does not exist"
		} else {
			return fmt.Errorf("failed to load brand: %w", err)
		}
	}
	for i, f := range req.MediaFiles {
		switch f.Type {
		case "video", "audio", "pdf", "youtube":
		default:
			fields["media_files"] = fmt.Sprintf("Unsupported media type %q at index %d", f.Type, i)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
