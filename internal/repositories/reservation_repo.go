package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `
	id, hotel_id, guest_id, status,
	room_type_id, room_id, check_in_date, check_out_date,
	activity_id, slot_id,
	guest_count, currency, total_amount, notes,
	confirmed_by, cancelled_by, cancel_reason,
	created_at, updated_at`

type ReservationRepo struct {
	pool *pgxpool.Pool
}

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

type ReservationFilter struct {
	HotelID uuid.UUID
	GuestID *uuid.UUID
	RoomID  *uuid.UUID
	Status  *string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

func (r *ReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO reservations (hotel_id, guest_id, status,
			room_type_id, room_id, check_in_date, check_out_date,
			activity_id, slot_id,
			guest_count, currency, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, res.HotelID, res.GuestID, res.Status,
		res.RoomTypeID, res.RoomID, res.CheckInDate, res.CheckOutDate,
		res.ActivityID, res.SlotID,
		res.GuestCount, res.Currency, res.TotalAmount, res.Notes,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

// GetByID is tenant-scoped; (nil, nil) covers both a missing row and a row
// owned by another hotel.
func (r *ReservationRepo) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations WHERE id = $1 AND hotel_id = $2
	`, id, hotelID)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`
	where := []string{"hotel_id = $1"}
	args := []any{f.HotelID}
	argIdx := 2

	if f.GuestID != nil {
		where = append(where, fmt.Sprintf("guest_id = $%d", argIdx))
		args = append(args, *f.GuestID)
		argIdx++
	}
	if f.RoomID != nil {
		where = append(where, fmt.Sprintf("room_id = $%d", argIdx))
		args = append(args, *f.RoomID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.From != nil {
		where = append(where, fmt.Sprintf("check_in_date >= $%d", argIdx))
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("check_in_date <= $%d", argIdx))
		args = append(args, *f.To)
		argIdx++
	}

	query += " WHERE " + strings.Join(where, " AND ")
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

// Update persists the full row. The caller checked transition legality
// against the row it read; no row lock is taken, concurrent writers are
// last-write-wins.
func (r *ReservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reservations SET
			guest_id = $1, status = $2,
			room_type_id = $3, room_id = $4, check_in_date = $5, check_out_date = $6,
			activity_id = $7, slot_id = $8,
			guest_count = $9, currency = $10, total_amount = $11, notes = $12,
			confirmed_by = $13, cancelled_by = $14, cancel_reason = $15,
			updated_at = now()
		WHERE id = $16 AND hotel_id = $17
	`, res.GuestID, res.Status,
		res.RoomTypeID, res.RoomID, res.CheckInDate, res.CheckOutDate,
		res.ActivityID, res.SlotID,
		res.GuestCount, res.Currency, res.TotalAmount, res.Notes,
		res.ConfirmedBy, res.CancelledBy, res.CancelReason,
		res.ID, res.HotelID)
	return err
}

// ListOverdueConfirmed returns confirmed lodging reservations whose check-in
// date is before cutoff, for the no-show sweep.
func (r *ReservationRepo) ListOverdueConfirmed(ctx context.Context, cutoff time.Time) ([]models.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE status = $1 AND check_in_date IS NOT NULL AND check_in_date < $2
		ORDER BY check_in_date
	`, models.ReservationStatusConfirmed, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

// HasActiveForRoom reports whether any non-terminal reservation references
// the room. Used to block room deletion.
func (r *ReservationRepo) HasActiveForRoom(ctx context.Context, hotelID, roomID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE hotel_id = $1 AND room_id = $2 AND status IN ($3, $4, $5)
		)
	`, hotelID, roomID,
		models.ReservationStatusPending, models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn,
	).Scan(&exists)
	return exists, err
}

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(&res.ID, &res.HotelID, &res.GuestID, &res.Status,
		&res.RoomTypeID, &res.RoomID, &res.CheckInDate, &res.CheckOutDate,
		&res.ActivityID, &res.SlotID,
		&res.GuestCount, &res.Currency, &res.TotalAmount, &res.Notes,
		&res.ConfirmedBy, &res.CancelledBy, &res.CancelReason,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
