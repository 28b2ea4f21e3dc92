package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

func (r *ActivityRepo) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Activity, error) {
	var a models.Activity
	err := r.pool.QueryRow(ctx, `
		SELECT id, hotel_id, name, capacity, base_price, created_at
		FROM activities WHERE id = $1 AND hotel_id = $2
	`, id, hotelID).Scan(&a.ID, &a.HotelID, &a.Name, &a.Capacity, &a.BasePrice, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) GetSlot(ctx context.Context, activityID, slotID uuid.UUID) (*models.ActivitySlot, error) {
	var s models.ActivitySlot
	err := r.pool.QueryRow(ctx, `
		SELECT id, activity_id, starts_at, ends_at
		FROM activity_slots WHERE id = $1 AND activity_id = $2
	`, slotID, activityID).Scan(&s.ID, &s.ActivityID, &s.StartsAt, &s.EndsAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
