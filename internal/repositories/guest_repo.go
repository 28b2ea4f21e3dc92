package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GuestRepo struct {
	pool *pgxpool.Pool
}

func NewGuestRepo(pool *pgxpool.Pool) *GuestRepo {
	return &GuestRepo{pool: pool}
}

func (r *GuestRepo) Create(ctx context.Context, g *models.Guest) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO guests (hotel_id, full_name, email, phone, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, g.HotelID, g.FullName, g.Email, g.Phone, g.Notes,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *GuestRepo) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Guest, error) {
	var g models.Guest
	err := r.pool.QueryRow(ctx, `
		SELECT id, hotel_id, full_name, email, phone, notes, created_at, updated_at
		FROM guests WHERE id = $1 AND hotel_id = $2
	`, id, hotelID).Scan(&g.ID, &g.HotelID, &g.FullName, &g.Email, &g.Phone,
		&g.Notes, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepo) List(ctx context.Context, hotelID uuid.UUID, limit, offset int) ([]models.Guest, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, hotel_id, full_name, email, phone, notes, created_at, updated_at
		FROM guests WHERE hotel_id = $1
		ORDER BY full_name LIMIT $2 OFFSET $3
	`, hotelID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.HotelID, &g.FullName, &g.Email, &g.Phone,
			&g.Notes, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *GuestRepo) Update(ctx context.Context, g *models.Guest) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE guests SET full_name = $1, email = $2, phone = $3, notes = $4, updated_at = now()
		WHERE id = $5 AND hotel_id = $6
	`, g.FullName, g.Email, g.Phone, g.Notes, g.ID, g.HotelID)
	return err
}

func (r *GuestRepo) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM guests WHERE id = $1 AND hotel_id = $2`, id, hotelID)
	return err
}
