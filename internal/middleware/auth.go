package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hotelops/backend/internal/apperr"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/http/dto"
	"github.com/hotelops/backend/internal/rbac"
)

const ctxAuth = "auth_ctx"

// RequireAuth resolves identity only. The resulting context carries no role.
func RequireAuth(guard *authz.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, err := guard.AuthenticateOnly(c.Context(), bearerToken(c))
		if err != nil {
			return reject(c, err)
		}
		stash(c, authCtx)
		return c.Next()
	}
}

// RequirePermissions runs the full guard: session, active hotel membership,
// and the permission check for this route's requirements. Rejections happen
// here, before any domain logic runs.
func RequirePermissions(guard *authz.Guard, required rbac.Required) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, err := guard.Authorize(c.Context(), bearerToken(c), required)
		if err != nil {
			return reject(c, err)
		}
		stash(c, authCtx)
		return c.Next()
	}
}

// AuthCtx returns the context resolved by the guard for this request.
func AuthCtx(c *fiber.Ctx) *authz.Context {
	authCtx, _ := c.Locals(ctxAuth).(*authz.Context)
	return authCtx
}

func stash(c *fiber.Ctx, authCtx *authz.Context) {
	authCtx.IP = c.IP()
	authCtx.UserAgent = c.Get("User-Agent")
	c.Locals(ctxAuth, authCtx)
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

func reject(c *fiber.Ctx, err error) error {
	appErr := apperr.From(err)
	reqID, _ := c.Locals(CtxRequestID).(string)
	return c.Status(apperr.HTTPStatus(appErr)).JSON(dto.ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: reqID,
	})
}
