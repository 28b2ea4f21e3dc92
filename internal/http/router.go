package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/config"
	"github.com/hotelops/backend/internal/http/handlers"
	"github.com/hotelops/backend/internal/metrics"
	"github.com/hotelops/backend/internal/middleware"
	"github.com/hotelops/backend/internal/rbac"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	guard *authz.Guard,
	authHandler *handlers.AuthHandler,
	reservationHandler *handlers.ReservationHandler,
	roomHandler *handlers.RoomHandler,
	guestHandler *handlers.GuestHandler,
	auditHandler *handlers.AuditHandler,
	liveHandler *handlers.LiveHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, Last-Event-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Auth (public, rate limited)
	api.Post("/auth/login", authHandler.Login)

	// Session endpoints need authentication but no hotel permission: a user
	// with zero memberships can still see who they are and pick a hotel.
	session := api.Group("", middleware.RequireAuth(guard))
	session.Get("/me", authHandler.Me)
	session.Post("/auth/switch-hotel", authHandler.SwitchHotel)

	reservations := api.Group("/reservations")
	reservations.Post("", perm(guard, rbac.ResourceReservations, rbac.ActionCreate), reservationHandler.Create)
	reservations.Get("", perm(guard, rbac.ResourceReservations, rbac.ActionRead), reservationHandler.List)
	reservations.Get("/:id", perm(guard, rbac.ResourceReservations, rbac.ActionRead), reservationHandler.Get)
	reservations.Put("/:id", perm(guard, rbac.ResourceReservations, rbac.ActionUpdate), reservationHandler.Update)
	reservations.Post("/:id/confirm", perm(guard, rbac.ResourceReservations, rbac.ActionUpdate), reservationHandler.Confirm)
	reservations.Post("/:id/check-in", perm(guard, rbac.ResourceReservations, rbac.ActionCheckin), reservationHandler.CheckIn)
	reservations.Post("/:id/check-out", perm(guard, rbac.ResourceReservations, rbac.ActionCheckout), reservationHandler.CheckOut)
	reservations.Post("/:id/cancel", perm(guard, rbac.ResourceReservations, rbac.ActionCancel), reservationHandler.Cancel)

	rooms := api.Group("/rooms")
	rooms.Post("", perm(guard, rbac.ResourceRooms, rbac.ActionCreate), roomHandler.Create)
	rooms.Get("", perm(guard, rbac.ResourceRooms, rbac.ActionRead), roomHandler.List)
	rooms.Get("/:id", perm(guard, rbac.ResourceRooms, rbac.ActionRead), roomHandler.Get)
	rooms.Put("/:id", perm(guard, rbac.ResourceRooms, rbac.ActionUpdate), roomHandler.Update)
	rooms.Delete("/:id", perm(guard, rbac.ResourceRooms, rbac.ActionDelete), roomHandler.Delete)

	guests := api.Group("/guests")
	guests.Post("", perm(guard, rbac.ResourceGuests, rbac.ActionCreate), guestHandler.Create)
	guests.Get("", perm(guard, rbac.ResourceGuests, rbac.ActionRead), guestHandler.List)
	guests.Get("/:id", perm(guard, rbac.ResourceGuests, rbac.ActionRead), guestHandler.Get)
	guests.Put("/:id", perm(guard, rbac.ResourceGuests, rbac.ActionUpdate), guestHandler.Update)
	guests.Delete("/:id", perm(guard, rbac.ResourceGuests, rbac.ActionDelete), guestHandler.Delete)

	api.Get("/audit", perm(guard, rbac.ResourceAudit, rbac.ActionRead), auditHandler.List)

	// Live feed: SSE plus a websocket variant. Both authorize inside the
	// handler because the token arrives in the query string.
	api.Get("/live", liveHandler.StreamSSE)
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(liveHandler.HandleWS))
}

func perm(guard *authz.Guard, resource rbac.Resource, actions ...rbac.Action) fiber.Handler {
	return middleware.RequirePermissions(guard, rbac.Required{resource: actions})
}
