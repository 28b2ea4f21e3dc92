package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/models"
	"go.uber.org/zap"
)

type RoomService struct {
	rooms        RoomStore
	reservations ReservationStore
	recorder     AuditRecorder
	log          *zap.Logger
}

func NewRoomService(rooms RoomStore, reservations ReservationStore, recorder AuditRecorder, log *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, reservations: reservations, recorder: recorder, log: log}
}

type CreateRoomInput struct {
	RoomTypeID uuid.UUID
	Number     string
	Floor      int
}

func (s *RoomService) Create(ctx context.Context, authCtx *authz.Context, input CreateRoomInput) (*models.Room, error) {
	if input.Number == "" {
		return nil, apperr.InvalidInput("number is required")
	}
	roomType, err := s.rooms.GetRoomType(ctx, authCtx.HotelID, input.RoomTypeID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if roomType == nil {
		return nil, apperr.NotFound("room type")
	}

	room := &models.Room{
		HotelID:    authCtx.HotelID,
		RoomTypeID: input.RoomTypeID,
		Number:     input.Number,
		Floor:      input.Floor,
		Status:     models.RoomStatusAvailable,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionCreate, "room", &room.ID, nil, *room)
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, authCtx.HotelID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if room == nil {
		return nil, apperr.NotFound("room")
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context, authCtx *authz.Context, limit, offset int) ([]models.Room, error) {
	rooms, err := s.rooms.List(ctx, authCtx.HotelID, limit, offset)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return rooms, nil
}

type UpdateRoomInput struct {
	Number *string
	Floor  *int
	Status *string
}

func (s *RoomService) Update(ctx context.Context, authCtx *authz.Context, id uuid.UUID, input UpdateRoomInput) (*models.Room, error) {
	room, err := s.Get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	prev := *room

	if input.Number != nil {
		room.Number = *input.Number
	}
	if input.Floor != nil {
		room.Floor = *input.Floor
	}
	if input.Status != nil {
		switch *input.Status {
		case models.RoomStatusAvailable, models.RoomStatusOccupied, models.RoomStatusMaintenance:
			room.Status = *input.Status
		default:
			return nil, apperr.InvalidInput("unknown room status %q", *input.Status)
		}
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionUpdate, "room", &room.ID, prev, *room)
	return room, nil
}

// Delete removes a room unless a pending, confirmed or checked-in
// reservation still references it.
func (s *RoomService) Delete(ctx context.Context, authCtx *authz.Context, id uuid.UUID) error {
	room, err := s.Get(ctx, authCtx, id)
	if err != nil {
		return err
	}
	active, err := s.reservations.HasActiveForRoom(ctx, authCtx.HotelID, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if active {
		return apperr.Conflict("room has active reservations")
	}
	if err := s.rooms.Delete(ctx, authCtx.HotelID, id); err != nil {
		return apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionDelete, "room", &room.ID, *room, nil)
	return nil
}
