package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/events"
	"github.com/hotelops/backend/internal/models"
	"github.com/hotelops/backend/internal/repositories"
	"go.uber.org/zap"
)

// ReservationService owns the reservation lifecycle. Every successful
// mutation persists the row, records exactly one audit entry with full
// before/after snapshots, and publishes exactly one domain event carrying
// only the changed fields — in that order.
//
// Transition legality is checked against the row fetched within the same
// operation. There is no row lock: two concurrent transitions on the same
// reservation race read-then-write and the last write wins. This is a
// documented trade-off, not an oversight.
type ReservationService struct {
	reservations ReservationStore
	rooms        RoomStore
	guests       GuestStore
	activities   ActivityStore
	recorder     AuditRecorder
	publisher    events.Publisher
	log          *zap.Logger
}

func NewReservationService(
	reservations ReservationStore,
	rooms RoomStore,
	guests GuestStore,
	activities ActivityStore,
	recorder AuditRecorder,
	publisher events.Publisher,
	log *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		guests:       guests,
		activities:   activities,
		recorder:     recorder,
		publisher:    publisher,
		log:          log,
	}
}

type CreateReservationInput struct {
	GuestID uuid.UUID

	// Lodging booking
	RoomTypeID   *uuid.UUID
	RoomID       *uuid.UUID
	CheckInDate  *time.Time
	CheckOutDate *time.Time

	// Activity booking
	ActivityID *uuid.UUID
	SlotID     *uuid.UUID

	GuestCount  int
	Currency    string
	TotalAmount string
	Notes       *string
}

// Create validates tenant ownership of every referenced entity and inserts
// the reservation in status pending.
func (s *ReservationService) Create(ctx context.Context, authCtx *authz.Context, input CreateReservationInput) (*models.Reservation, error) {
	lodging := input.RoomTypeID != nil
	activity := input.ActivityID != nil
	if lodging == activity {
		return nil, apperr.InvalidInput("exactly one of room_type_id or activity_id is required")
	}
	if input.GuestCount <= 0 {
		return nil, apperr.InvalidInput("guest_count must be positive")
	}
	if input.Currency == "" || input.TotalAmount == "" {
		return nil, apperr.InvalidInput("currency and total_amount are required")
	}

	guest, err := s.guests.GetByID(ctx, authCtx.HotelID, input.GuestID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if guest == nil {
		return nil, apperr.NotFound("guest")
	}

	if lodging {
		if input.SlotID != nil {
			return nil, apperr.InvalidInput("slot_id is not valid for a lodging booking")
		}
		if input.CheckInDate == nil || input.CheckOutDate == nil {
			return nil, apperr.InvalidInput("check_in_date and check_out_date are required for a lodging booking")
		}
		if !input.CheckInDate.Before(*input.CheckOutDate) {
			return nil, apperr.InvalidInput("check_out_date must be after check_in_date")
		}
		roomType, err := s.rooms.GetRoomType(ctx, authCtx.HotelID, *input.RoomTypeID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if roomType == nil {
			return nil, apperr.NotFound("room type")
		}
		if input.RoomID != nil {
			room, err := s.rooms.GetByID(ctx, authCtx.HotelID, *input.RoomID)
			if err != nil {
				return nil, apperr.Internal(err)
			}
			if room == nil {
				return nil, apperr.NotFound("room")
			}
		}
	} else {
		if input.RoomID != nil || input.CheckInDate != nil || input.CheckOutDate != nil {
			return nil, apperr.InvalidInput("room_id and lodging dates are not valid for an activity booking")
		}
		if input.SlotID == nil {
			return nil, apperr.InvalidInput("slot_id is required for an activity booking")
		}
		act, err := s.activities.GetByID(ctx, authCtx.HotelID, *input.ActivityID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if act == nil {
			return nil, apperr.NotFound("activity")
		}
		slot, err := s.activities.GetSlot(ctx, *input.ActivityID, *input.SlotID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if slot == nil {
			return nil, apperr.NotFound("activity slot")
		}
	}

	res := &models.Reservation{
		HotelID:      authCtx.HotelID,
		GuestID:      input.GuestID,
		Status:       models.ReservationStatusPending,
		RoomTypeID:   input.RoomTypeID,
		RoomID:       input.RoomID,
		CheckInDate:  input.CheckInDate,
		CheckOutDate: input.CheckOutDate,
		ActivityID:   input.ActivityID,
		SlotID:       input.SlotID,
		GuestCount:   input.GuestCount,
		Currency:     input.Currency,
		TotalAmount:  input.TotalAmount,
		Notes:        input.Notes,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, apperr.Internal(err)
	}

	s.recorder.Record(authCtx, models.AuditActionCreate, "reservation", &res.ID, nil, *res)
	s.publisher.Publish(events.Event{
		Type:      events.EventReservationCreated,
		SubjectID: res.ID,
		Patch: map[string]any{
			"status":   res.Status,
			"guest_id": res.GuestID,
		},
	})
	return res, nil
}

// Confirm moves pending → confirmed and stamps the confirming actor.
func (s *ReservationService) Confirm(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	userID := authCtx.UserID
	return s.transition(ctx, authCtx, res, models.ReservationStatusConfirmed, "confirm", models.AuditActionConfirm,
		func(r *models.Reservation) { r.ConfirmedBy = &userID },
		map[string]any{"confirmed_by": userID},
	)
}

// CheckIn moves confirmed → checked_in. If a physical room is assigned it
// becomes occupied.
func (s *ReservationService) CheckIn(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	res, err = s.transition(ctx, authCtx, res, models.ReservationStatusCheckedIn, "check_in", models.AuditActionCheckIn, nil, nil)
	if err != nil {
		return nil, err
	}
	if res.RoomID != nil {
		if err := s.rooms.UpdateStatus(ctx, *res.RoomID, models.RoomStatusOccupied); err != nil {
			s.log.Error("failed to mark room occupied",
				zap.String("room_id", res.RoomID.String()),
				zap.Error(err),
			)
		}
	}
	return res, nil
}

// CheckOut moves checked_in → checked_out. An assigned room is released.
func (s *ReservationService) CheckOut(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	res, err = s.transition(ctx, authCtx, res, models.ReservationStatusCheckedOut, "check_out", models.AuditActionCheckOut, nil, nil)
	if err != nil {
		return nil, err
	}
	if res.RoomID != nil {
		if err := s.rooms.UpdateStatus(ctx, *res.RoomID, models.RoomStatusAvailable); err != nil {
			s.log.Error("failed to release room",
				zap.String("room_id", res.RoomID.String()),
				zap.Error(err),
			)
		}
	}
	return res, nil
}

// Cancel moves pending|confirmed → cancelled, stamping the cancelling actor
// and the optional reason.
func (s *ReservationService) Cancel(ctx context.Context, authCtx *authz.Context, id uuid.UUID, reason *string) (*models.Reservation, error) {
	res, err := s.get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	userID := authCtx.UserID
	patch := map[string]any{"cancelled_by": userID}
	if reason != nil {
		patch["cancel_reason"] = *reason
	}
	return s.transition(ctx, authCtx, res, models.ReservationStatusCancelled, "cancel", models.AuditActionCancel,
		func(r *models.Reservation) {
			r.CancelledBy = &userID
			r.CancelReason = reason
		},
		patch,
	)
}

// MarkNoShow moves confirmed → no_show. Policy-driven: invoked by the sweep
// worker, not exposed as a route. The room is never touched since the guest
// never checked in.
func (s *ReservationService) MarkNoShow(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, authCtx, res, models.ReservationStatusNoShow, "mark no-show", models.AuditActionNoShow, nil, nil)
}

type UpdateReservationInput struct {
	RoomID       *uuid.UUID
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	GuestCount   *int
	Currency     *string
	TotalAmount  *string
	Notes        *string
}

// Update edits reservation details. Permitted only while the reservation is
// still pending or confirmed; anything later is an invalid transition.
func (s *ReservationService) Update(ctx context.Context, authCtx *authz.Context, id uuid.UUID, input UpdateReservationInput) (*models.Reservation, error) {
	res, err := s.get(ctx, authCtx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != models.ReservationStatusPending && res.Status != models.ReservationStatusConfirmed {
		return nil, apperr.InvalidTransition("update", res.Status)
	}

	prev := *res
	patch := map[string]any{}

	if input.RoomID != nil {
		if !res.IsLodging() {
			return nil, apperr.InvalidInput("cannot assign a room to an activity booking")
		}
		room, err := s.rooms.GetByID(ctx, authCtx.HotelID, *input.RoomID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if room == nil {
			return nil, apperr.NotFound("room")
		}
		res.RoomID = input.RoomID
		patch["room_id"] = *input.RoomID
	}
	if input.CheckInDate != nil {
		res.CheckInDate = input.CheckInDate
		patch["check_in_date"] = *input.CheckInDate
	}
	if input.CheckOutDate != nil {
		res.CheckOutDate = input.CheckOutDate
		patch["check_out_date"] = *input.CheckOutDate
	}
	if res.IsLodging() && res.CheckInDate != nil && res.CheckOutDate != nil && !res.CheckInDate.Before(*res.CheckOutDate) {
		return nil, apperr.InvalidInput("check_out_date must be after check_in_date")
	}
	if input.GuestCount != nil {
		if *input.GuestCount <= 0 {
			return nil, apperr.InvalidInput("guest_count must be positive")
		}
		res.GuestCount = *input.GuestCount
		patch["guest_count"] = *input.GuestCount
	}
	if input.Currency != nil {
		res.Currency = *input.Currency
		patch["currency"] = *input.Currency
	}
	if input.TotalAmount != nil {
		res.TotalAmount = *input.TotalAmount
		patch["total_amount"] = *input.TotalAmount
	}
	if input.Notes != nil {
		res.Notes = input.Notes
		patch["notes"] = *input.Notes
	}

	if len(patch) == 0 {
		return res, nil
	}

	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, apperr.Internal(err)
	}
	s.recorder.Record(authCtx, models.AuditActionUpdate, "reservation", &res.ID, prev, *res)
	s.publisher.Publish(events.Event{
		Type:      events.EventReservationUpdated,
		SubjectID: res.ID,
		Patch:     patch,
	})
	return res, nil
}

func (s *ReservationService) Get(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.get(ctx, authCtx, id)
}

func (s *ReservationService) List(ctx context.Context, authCtx *authz.Context, f repositories.ReservationFilter) ([]models.Reservation, error) {
	f.HotelID = authCtx.HotelID
	list, err := s.reservations.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

// SweepNoShows marks every confirmed lodging reservation whose check-in date
// is older than cutoff as no_show, acting as the system. Per-row failures
// are logged and the sweep continues.
func (s *ReservationService) SweepNoShows(ctx context.Context, cutoff time.Time) (int, error) {
	overdue, err := s.reservations.ListOverdueConfirmed(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range overdue {
		res := &overdue[i]
		if _, err := s.MarkNoShow(ctx, authz.System(res.HotelID), res.ID); err != nil {
			s.log.Warn("no-show sweep skipped reservation",
				zap.String("reservation_id", res.ID.String()),
				zap.Error(err),
			)
			continue
		}
		marked++
	}
	return marked, nil
}

// get loads a tenant-scoped reservation; absent and cross-tenant rows are the
// same NotFound.
func (s *ReservationService) get(ctx context.Context, authCtx *authz.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, authCtx.HotelID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if res == nil {
		return nil, apperr.NotFound("reservation")
	}
	return res, nil
}

// transition validates and performs a status change: persist, then audit,
// then broadcast. apply mutates actor stamps before the write; extraPatch
// adds the op's changed fields beyond status.
func (s *ReservationService) transition(
	ctx context.Context,
	authCtx *authz.Context,
	res *models.Reservation,
	newStatus, op, auditAction string,
	apply func(*models.Reservation),
	extraPatch map[string]any,
) (*models.Reservation, error) {
	if !models.IsValidTransition(res.Status, newStatus) {
		return nil, apperr.InvalidTransition(op, res.Status)
	}

	prev := *res
	res.Status = newStatus
	if apply != nil {
		apply(res)
	}
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, apperr.Internal(err)
	}

	s.recorder.Record(authCtx, auditAction, "reservation", &res.ID, prev, *res)

	patch := map[string]any{"status": newStatus}
	for k, v := range extraPatch {
		patch[k] = v
	}
	s.publisher.Publish(events.Event{
		Type:      events.EventReservationUpdated,
		SubjectID: res.ID,
		Patch:     patch,
	})
	return res, nil
}
