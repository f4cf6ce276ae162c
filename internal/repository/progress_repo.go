package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"formacao-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// Get returns (nil, nil) when no record exists; "no record" is a valid
// status, not an error.
func (r *ProgressRepo) Get(ctx context.Context, userID, trainingID uuid.UUID) (*models.Progress, error) {
	p := &models.Progress{}
	query := `SELECT user_id, training_id, watched, score, passed, completed_at, updated_at
		FROM progress WHERE user_id = $1 AND training_id = $2`

	err := r.pool.QueryRow(ctx, query, userID, trainingID).Scan(
		&p.UserID, &p.TrainingID, &p.Watched, &p.Score, &p.Passed, &p.CompletedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProgressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Progress, error) {
	query := `SELECT user_id, training_id, watched, score, passed, completed_at, updated_at
		FROM progress WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Progress
	for rows.Next() {
		p := &models.Progress{}
		err := rows.Scan(&p.UserID, &p.TrainingID, &p.Watched, &p.Score, &p.Passed, &p.CompletedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, nil
}

// MarkWatched upserts watched=true without touching score fields.
func (r *ProgressRepo) MarkWatched(ctx context.Context, userID, trainingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO progress (user_id, training_id, watched, passed, updated_at)
		VALUES ($1, $2, TRUE, FALSE, NOW())
		ON CONFLICT (user_id, training_id)
		DO UPDATE SET watched = TRUE, updated_at = NOW()`,
		userID, trainingID,
	)
	return err
}

// RecordResult merge-upserts a submission outcome. The watched flag is
// deliberately left alone; completedAt is set only on a pass.
func (r *ProgressRepo) RecordResult(ctx context.Context, userID, trainingID uuid.UUID, score int, passed bool) error {
	var completedAt *time.Time
	if passed {
		now := time.Now()
		completedAt = &now
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO progress (user_id, training_id, watched, score, passed, completed_at, updated_at)
		VALUES ($1, $2, FALSE, $3, $4, $5, NOW())
		ON CONFLICT (user_id, training_id)
		DO UPDATE SET score = $3, passed = $4, completed_at = $5, updated_at = NOW()`,
		userID, trainingID, score, passed, completedAt,
	)
	return err
}
