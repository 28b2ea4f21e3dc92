package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/hotelops/backend/internal/audit"
	"github.com/hotelops/backend/internal/auth"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/config"
	"github.com/hotelops/backend/internal/db"
	"github.com/hotelops/backend/internal/events"
	apphttp "github.com/hotelops/backend/internal/http"
	"github.com/hotelops/backend/internal/http/handlers"
	"github.com/hotelops/backend/internal/metrics"
	"github.com/hotelops/backend/internal/repositories"
	"github.com/hotelops/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	metrics.Init()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	membershipRepo := repositories.NewMembershipRepo(pool)
	hotelRepo := repositories.NewHotelRepo(pool)
	roomRepo := repositories.NewRoomRepo(pool)
	guestRepo := repositories.NewGuestRepo(pool)
	reservationRepo := repositories.NewReservationRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Audit recorder drains its queue on shutdown.
	recorder := audit.NewRecorder(auditRepo, cfg.AuditQueueSize, log)
	defer recorder.Close()

	// Live event hub
	hub := events.NewHub(cfg.EventBufferSize, log)

	// Authorization
	sessions := auth.NewTokenSessions(cfg.JWTSecret)
	guard := authz.NewGuard(sessions, membershipRepo, log)

	// Services
	reservationService := services.NewReservationService(reservationRepo, roomRepo, guestRepo, activityRepo, recorder, hub, log)
	roomService := services.NewRoomService(roomRepo, reservationRepo, recorder, log)
	guestService := services.NewGuestService(guestRepo, recorder, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, membershipRepo, hotelRepo, cfg, log)
	reservationHandler := handlers.NewReservationHandler(reservationService, log)
	roomHandler := handlers.NewRoomHandler(roomService, log)
	guestHandler := handlers.NewGuestHandler(guestService, log)
	auditHandler := handlers.NewAuditHandler(auditRepo, log)
	liveHandler := handlers.NewLiveHandler(hub, guard, cfg.SSEKeepAlive, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, guard, authHandler, reservationHandler, roomHandler, guestHandler, auditHandler, liveHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
