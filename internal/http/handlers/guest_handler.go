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

type GuestHandler struct {
	service *services.GuestService
	log     *zap.Logger
}

func NewGuestHandler(service *services.GuestService, log *zap.Logger) *GuestHandler {
	return &GuestHandler{service: service, log: log}
}

func (h *GuestHandler) Create(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)

	var req dto.GuestRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	guest, err := h.service.Create(c.Context(), authCtx, services.GuestInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, guest)
}

func (h *GuestHandler) Get(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid guest id"))
	}
	guest, err := h.service.Get(c.Context(), authCtx, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, guest)
}

func (h *GuestHandler) List(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	guests, err := h.service.List(c.Context(), authCtx, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, guests)
}

func (h *GuestHandler) Update(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid guest id"))
	}

	var req dto.GuestRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}

	guest, err := h.service.Update(c.Context(), authCtx, id, services.GuestInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, guest)
}

func (h *GuestHandler) Delete(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, apperr.InvalidInput("invalid guest id"))
	}
	if err := h.service.Delete(c.Context(), authCtx, id); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil)
}
