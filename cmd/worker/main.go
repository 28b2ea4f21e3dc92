package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hotelops/backend/internal/audit"
	"github.com/hotelops/backend/internal/config"
	"github.com/hotelops/backend/internal/db"
	"github.com/hotelops/backend/internal/events"
	"github.com/hotelops/backend/internal/repositories"
	"github.com/hotelops/backend/internal/services"
	"go.uber.org/zap"
)

// The worker marks overdue confirmed reservations as no-shows. Guests who
// never check in stop holding a room hostage after the grace period.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Repos
	roomRepo := repositories.NewRoomRepo(pool)
	guestRepo := repositories.NewGuestRepo(pool)
	reservationRepo := repositories.NewReservationRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	recorder := audit.NewRecorder(auditRepo, cfg.AuditQueueSize, log)
	defer recorder.Close()

	// The worker has no connected dashboards; its hub exists so sweeps
	// still assign sequence numbers the same way the API does.
	hub := events.NewHub(cfg.EventBufferSize, log)

	reservationService := services.NewReservationService(reservationRepo, roomRepo, guestRepo, activityRepo, recorder, hub, log)

	log.Info("worker started",
		zap.Duration("sweep_interval", cfg.NoShowSweepInterval),
		zap.Duration("grace", cfg.NoShowGrace),
	)

	ticker := time.NewTicker(cfg.NoShowSweepInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-cfg.NoShowGrace)
			marked, err := reservationService.SweepNoShows(ctx, cutoff)
			if err != nil {
				log.Error("no-show sweep failed", zap.Error(err))
				continue
			}
			if marked > 0 {
				log.Info("no-show sweep done", zap.Int("marked", marked))
			}
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		}
	}
}
