package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/http/dto"
	"github.com/hotelops/backend/internal/middleware"
	"github.com/hotelops/backend/internal/models"
	"github.com/hotelops/backend/internal/repositories"
	"github.com/hotelops/backend/internal/services"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service *services.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service *services.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, log: log}
}

func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)

	var req dto.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid guest_id"))
	}

	input := services.CreateReservationInput{
		GuestID:      guestID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		GuestCount:   req.GuestCount,
		Currency:     req.Currency,
		TotalAmount:  req.TotalAmount,
		Notes:        req.Notes,
	}
	if input.RoomTypeID, err = parseOptionalUUID(req.RoomTypeID, "room_type_id"); err != nil {
		return respondError(c, err)
	}
	if input.RoomID, err = parseOptionalUUID(req.RoomID, "room_id"); err != nil {
		return respondError(c, err)
	}
	if input.ActivityID, err = parseOptionalUUID(req.ActivityID, "activity_id"); err != nil {
		return respondError(c, err)
	}
	if input.SlotID, err = parseOptionalUUID(req.SlotID, "slot_id"); err != nil {
		return respondError(c, err)
	}

	res, err := h.service.Create(c.Context(), authCtx, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, res)
}

func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid reservation id"))
	}
	res, err := h.service.Get(c.Context(), authCtx, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, res)
}

func (h *ReservationHandler) List(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)

	filter := repositories.ReservationFilter{
		HotelID: authCtx.HotelID,
		Status:  queryPtr(c, "status"),
		Limit:   c.QueryInt("limit", 50),
		Offset:  c.QueryInt("offset", 0),
	}
	var err error
	if filter.GuestID, err = parseOptionalUUID(queryPtr(c, "guest_id"), "guest_id"); err != nil {
		return respondError(c, err)
	}
	if filter.RoomID, err = parseOptionalUUID(queryPtr(c, "room_id"), "room_id"); err != nil {
		return respondError(c, err)
	}
	if filter.From, err = parseOptionalTime(queryPtr(c, "from"), "from"); err != nil {
		return respondError(c, err)
	}
	if filter.To, err = parseOptionalTime(queryPtr(c, "to"), "to"); err != nil {
		return respondError(c, err)
	}

	list, err := h.service.List(c.Context(), authCtx, filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid reservation id"))
	}

	var req dto.UpdateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	input := services.UpdateReservationInput{
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		GuestCount:   req.GuestCount,
		Currency:     req.Currency,
		TotalAmount:  req.TotalAmount,
		Notes:        req.Notes,
	}
	if input.RoomID, err = parseOptionalUUID(req.RoomID, "room_id"); err != nil {
		return respondError(c, err)
	}

	res, err := h.service.Update(c.Context(), authCtx, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, res)
}

func (h *ReservationHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.service.Confirm)
}

func (h *ReservationHandler) CheckIn(c *fiber.Ctx) error {
	return h.transition(c, h.service.CheckIn)
}

func (h *ReservationHandler) CheckOut(c *fiber.Ctx) error {
	return h.transition(c, h.service.CheckOut)
}

func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid reservation id"))
	}

	var req dto.CancelReservationRequest
	// Body is optional for cancel.
	_ = c.BodyParser(&req)

	res, err := h.service.Cancel(c.Context(), authCtx, id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, res)
}

func (h *ReservationHandler) transition(c *fiber.Ctx, fn func(context.Context, *authz.Context, uuid.UUID) (*models.Reservation, error)) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid reservation id"))
	}
	res, err := fn(c.Context(), authCtx, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, res)
}

func queryPtr(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

func parseOptionalUUID(s *string, field string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apperr.InvalidInput("invalid %s", field)
	}
	return &id, nil
}

func parseOptionalTime(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, apperr.InvalidInput("invalid %s, expected RFC3339", field)
	}
	return &t, nil
}
