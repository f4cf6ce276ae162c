package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"formacao-backend/internal/models"
)

type BrandRepo struct {
	pool *pgxpool.Pool
}

func NewBrandRepo(pool *pgxpool.Pool) *BrandRepo {
	return &BrandRepo{pool: pool}
}

func (r *BrandRepo) Create(ctx context.Context, b *models.Brand) error {
	b.ID = uuid.New()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO brands (id, name, description, sort_order) VALUES ($1, $2, $3, $4)",
		b.ID, b.Name, b.Description, b.SortOrder,
	)
	return err
}

func (r *BrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	b := &models.Brand{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, description, sort_order FROM brands WHERE id = $1", id,
	).Scan(&b.ID, &b.Name, &b.Description, &b.SortOrder)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BrandRepo) List(ctx context.Context) ([]*models.Brand, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, name, description, sort_order FROM brands ORDER BY sort_order, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		b := &models.Brand{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.SortOrder); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *models.Brand) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE brands SET name = $1, description = $2, sort_order = $3 WHERE id = $4",
		b.Name, b.Description, b.SortOrder, b.ID,
	)
	return err
}

func (r *BrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM brands WHERE id = $1", id)
	return err
}
