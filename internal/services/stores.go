package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/models"
	"github.com/hotelops/backend/internal/repositories"
)

// Store interfaces the services depend on, implemented by the pgx
// repositories and by in-memory fakes in tests.

type ReservationStore interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, f repositories.ReservationFilter) ([]models.Reservation, error)
	Update(ctx context.Context, res *models.Reservation) error
	ListOverdueConfirmed(ctx context.Context, cutoff time.Time) ([]models.Reservation, error)
	HasActiveForRoom(ctx context.Context, hotelID, roomID uuid.UUID) (bool, error)
}

type RoomStore interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Room, error)
	List(ctx context.Context, hotelID uuid.UUID, limit, offset int) ([]models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, hotelID, id uuid.UUID) error
	GetRoomType(ctx context.Context, hotelID, id uuid.UUID) (*models.RoomType, error)
}

type GuestStore interface {
	Create(ctx context.Context, g *models.Guest) error
	GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Guest, error)
	List(ctx context.Context, hotelID uuid.UUID, limit, offset int) ([]models.Guest, error)
	Update(ctx context.Context, g *models.Guest) error
	Delete(ctx context.Context, hotelID, id uuid.UUID) error
}

type ActivityStore interface {
	GetByID(ctx context.Context, hotelID, id uuid.UUID) (*models.Activity, error)
	GetSlot(ctx context.Context, activityID, slotID uuid.UUID) (*models.ActivitySlot, error)
}

// AuditRecorder is the write-only audit surface: no return value, failures
// are the recorder's problem, never the caller's.
type AuditRecorder interface {
	Record(authCtx *authz.Context, action, resourceType string, resourceID *uuid.UUID, previous, next any)
}
