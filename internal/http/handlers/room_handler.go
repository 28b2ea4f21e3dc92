package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/http/dto"
	"github.com/hotelops/backend/internal/middleware"
	"github.com/hotelops/backend/internal/services"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service *services.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service *services.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{service: service, log: log}
}

func (h *RoomHandler) Create(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)

	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	roomTypeID, err := uuid.Parse(req.RoomTypeID)
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid room_type_id"))
	}

	room, err := h.service.Create(c.Context(), authCtx, services.CreateRoomInput{
		RoomTypeID: roomTypeID,
		Number:     req.Number,
		Floor:      req.Floor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, room)
}

func (h *RoomHandler) Get(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid room id"))
	}
	room, err := h.service.Get(c.Context(), authCtx, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, room)
}

func (h *RoomHandler) List(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	rooms, err := h.service.List(c.Context(), authCtx, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, rooms)
}

func (h *RoomHandler) Update(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid room id"))
	}

	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	room, err := h.service.Update(c.Context(), authCtx, id, services.UpdateRoomInput{
		Number: req.Number,
		Floor:  req.Floor,
		Status: req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, room)
}

func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid room id"))
	}
	if err := h.service.Delete(c.Context(), authCtx, id); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil)
}
