package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

func (r *RoomRepo) Create(ctx context.Context, room *models.Room) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO rooms (hotel_id, room_type_id, number, floor, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, room.HotelID, room.RoomTypeID, room.Number, room.Floor, room.Status,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

// GetByID is tenant-scoped: a room in another hotel is (nil, nil), same as a
// room that does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.pool.QueryRow(ctx, `
		SELECT id, hotel_id, room_type_id, number, floor, status, created_at, updated_at
		FROM rooms WHERE id = $1 AND hotel_id = $2
	`, id, hotelID).Scan(&room.ID, &room.HotelID, &room.RoomTypeID, &room.Number,
		&room.Floor, &room.Status, &room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) List(ctx context.Context, hotelID uuid.UUID, limit, offset int) ([]models.Room, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, hotel_id, room_type_id, number, floor, status, created_at, updated_at
		FROM rooms WHERE hotel_id = $1
		ORDER BY number LIMIT $2 OFFSET $3
	`, hotelID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.HotelID, &room.RoomTypeID, &room.Number,
			&room.Floor, &room.Status, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepo) Update(ctx context.Context, room *models.Room) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE rooms SET room_type_id = $1, number = $2, floor = $3, status = $4, updated_at = now()
		WHERE id = $5 AND hotel_id = $6
	`, room.RoomTypeID, room.Number, room.Floor, room.Status, room.ID, room.HotelID)
	return err
}

func (r *RoomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE rooms SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return err
}

func (r *RoomRepo) Delete(ctx context.Context, hotelID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1 AND hotel_id = $2`, id, hotelID)
	return err
}

func (r *RoomRepo) GetRoomType(ctx context.Context, hotelID, id uuid.UUID) (*models.RoomType, error) {
	var rt models.RoomType
	err := r.pool.QueryRow(ctx, `
		SELECT id, hotel_id, name, capacity, base_price, description, created_at
		FROM room_types WHERE id = $1 AND hotel_id = $2
	`, id, hotelID).Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.Capacity, &rt.BasePrice,
		&rt.Description, &rt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
