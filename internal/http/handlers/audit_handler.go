package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/middleware"
	"github.com/hotelops/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuditHandler exposes the audit trail read-only. Writes only ever happen
// through the background recorder.
type AuditHandler struct {
	auditRepo *repositories.AuditRepo
	log       *zap.Logger
}

func NewAuditHandler(auditRepo *repositories.AuditRepo, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo, log: log}
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	authCtx := middleware.AuthCtx(c)

	filter := repositories.AuditFilter{
		HotelID:      authCtx.HotelID,
		ResourceType: queryPtr(c, "resource_type"),
		Action:       queryPtr(c, "action"),
		Limit:        c.QueryInt("limit", 50),
		Offset:       c.QueryInt("offset", 0),
	}
	var err error
	if filter.ActorUserID, err = parseOptionalUUID(queryPtr(c, "actor_user_id"), "actor_user_id"); err != nil {
		return respondError(c, err)
	}
	if filter.ResourceID, err = parseOptionalUUID(queryPtr(c, "resource_id"), "resource_id"); err != nil {
		return respondError(c, err)
	}
	if filter.From, err = parseOptionalTime(queryPtr(c, "from"), "from"); err != nil {
		return respondError(c, err)
	}
	if filter.To, err = parseOptionalTime(queryPtr(c, "to"), "to"); err != nil {
		return respondError(c, err)
	}

	entries, err := h.auditRepo.Query(c.Context(), filter)
	if err != nil {
		h.log.Error("audit query failed", zap.Error(err))
		return respondError(c, apperr.Internal(err))
	}
	return respondOK(c, entries)
}
