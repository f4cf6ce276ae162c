package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"formacao-backend/internal/models"
)

type TrainingRepo struct {
	pool *pgxpool.Pool
}

func NewTrainingRepo(pool *pgxpool.Pool) *TrainingRepo {
	return &TrainingRepo{pool: pool}
}

func (r *TrainingRepo) Create(ctx context.Context, t *models.Training) error {
	t.ID = uuid.New()
	if len(t.MediaFilesJSON) == 0 {
		t.MediaFilesJSON = json.RawMessage("[]")
	}

	query := `INSERT INTO trainings (id, brand_id, title, description, media_files, thumbnail_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		t.ID, t.BrandID, t.Title, t.Description, t.MediaFilesJSON, t.ThumbnailURL, t.IsActive,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *TrainingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	t := &models.Training{}
	query := `SELECT id, brand_id, title, description, media_files, thumbnail_url, is_active, transcript, created_at, updated_at
		FROM trainings WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.BrandID, &t.Title, &t.Description, &t.MediaFilesJSON, &t.ThumbnailURL,
		&t.IsActive, &t.Transcript, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TrainingRepo) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]*models.Training, error) {
	query := `SELECT id, brand_id, title, description, media_files, thumbnail_url, is_active, transcript, created_at, updated_at
		FROM trainings WHERE brand_id = $1 AND is_active ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []*models.Training
	for rows.Next() {
		t := &models.Training{}
		err := rows.Scan(&t.ID, &t.BrandID, &t.Title, &t.Description, &t.MediaFilesJSON,
			&t.ThumbnailURL, &t.IsActive, &t.Transcript, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, nil
}

func (r *TrainingRepo) Update(ctx context.Context, t *models.Training) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE trainings SET brand_id = $1, title = $2, description = $3, media_files = $4,
		 thumbnail_url = $5, is_active = $6, updated_at = NOW() WHERE id = $7`,
		t.BrandID, t.Title, t.Description, t.MediaFilesJSON, t.ThumbnailURL, t.IsActive, t.ID,
	)
	return err
}

// UpdateTranscript persists extracted transcript text on the training.
func (r *TrainingRepo) UpdateTranscript(ctx context.Context, id uuid.UUID, transcript string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE trainings SET transcript = $1, updated_at = $2 WHERE id = $3",
		transcript, time.Now(), id,
	)
	return err
}

func (r *TrainingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM trainings WHERE id = $1", id)
	return err
}
