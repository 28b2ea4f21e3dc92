package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipRepo struct {
	pool *pgxpool.Pool
}

func NewMembershipRepo(pool *pgxpool.Pool) *MembershipRepo {
	return &MembershipRepo{pool: pool}
}

// Find returns (nil, nil) when the user has no membership in the hotel.
func (r *MembershipRepo) Find(ctx context.Context, userID, hotelID uuid.UUID) (*models.Membership, error) {
	var m models.Membership
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, hotel_id, role, created_at
		FROM hotel_members WHERE user_id = $1 AND hotel_id = $2
	`, userID, hotelID).Scan(&m.UserID, &m.HotelID, &m.Role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, hotel_id, role, created_at
		FROM hotel_members WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.UserID, &m.HotelID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}
