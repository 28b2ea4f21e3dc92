package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HotelRepo struct {
	pool *pgxpool.Pool
}

func NewHotelRepo(pool *pgxpool.Pool) *HotelRepo {
	return &HotelRepo{pool: pool}
}

func (r *HotelRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	var h models.Hotel
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, timezone, currency, created_at, updated_at
		FROM hotels WHERE id = $1
	`, id).Scan(&h.ID, &h.Name, &h.Slug, &h.Timezone, &h.Currency, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
