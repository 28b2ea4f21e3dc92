package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/http/dto"
	"github.com/hotelops/backend/internal/middleware"
)

func respondError(c *fiber.Ctx, err error) error {
	appErr := apperr.From(err)
	reqID, _ := c.Locals(middleware.CtxRequestID).(string)
	return c.Status(apperr.HTTPStatus(appErr)).JSON(dto.ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: reqID,
	})
}

func respondOK(c *fiber.Ctx, data any) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: data})
}

func respondCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: data})
}
