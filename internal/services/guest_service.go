package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/models"
	"go.uber.org/zap"
)

type GuestService struct {
	guests   GuestStore
	recorder AuditRecorder
	log      *zap.Logger
}

func NewGuestService(guests GuestStore, recorder AuditRecorder, log *zap.Logger) *GuestService {
	return &GuestService{guests: guests, recorder: recorder, log: log}
}

type GuestInput struct {
	FullName string
	Email    *string
	Phone    *string
	Notes    *string
}

func (s *GuestService) Create(ctx context.Context, authCtx *authz.Context, input GuestInput) (*models.Guest, error) {
	if input.FullName == "" {
		return nil, apperr.InvalidInput("full_name is required")
	}
	guest := &models.Guest{
		HotelID:  authCtx.HotelID,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Notes:    input.Notes,
	}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionCreate, "guest", &guest.ID, nil, *guest)
	return guest, nil
}

func (s *GuestService) Get(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Guest, error) {
	guest, err := s.guests.GetByID(ctx, authCtx.HotelID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if guest == nil {
		return nil, apperr.NotFound("guest")
	}
	return guest, nil
}

func (s *GuestService) List(ctx context.Context, authCtx *authz.Context, limit, offset int) ([]models.Guest, error) {
	guests, err := s.guests.List(ctx, authCtx.HotelID, limit, offset)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return guests, nil
}

func (s *GuestService) Update(ctx context.Context, authCtx *authz.Context, id uuid.UUID, input GuestInput) (*models.Guest, error) {
	guest, err := s.Get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	prev := *guest

	if input.FullName != "" {
		guest.FullName = input.FullName
	}
	if input.Email != nil {
		guest.Email = input.Email
	}
	if input.Phone != nil {
		guest.Phone = input.Phone
	}
	if input.Notes != nil {
		guest.Notes = input.Notes
	}

	if err := s.guests.Update(ctx, guest); err != nil {
		return nil, apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionUpdate, "guest", &guest.ID, prev, *guest)
	return guest, nil
}

func (s *GuestService) Delete(ctx context.Context, authCtx *authz.Context, id uuid.UUID) error {
	guest, err := s.Get(ctx, authCtx, id)
	if err != nil {
		return err
	}
	if err := s.guests.Delete(ctx, authCtx.HotelID, id); err != nil {
		return apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionDelete, "guest", &guest.ID, *guest, nil)
	return nil
}
