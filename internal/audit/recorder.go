package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/metrics"
	"github.com/hotelops/backend/internal/models"
	"go.uber.org/zap"
)

// Store is where audit records land. Implemented by repositories.AuditRepo.
type Store interface {
	Insert(ctx context.Context, entry models.AuditLog) error
}

// Recorder writes audit records off the request path. Record returns nothing
// on purpose: an audit write failure is logged and swallowed, never allowed
// to fail or roll back the business operation that triggered it. At-most-once,
// best-effort.
type Recorder struct {
	store Store
	log   *zap.Logger

	queue chan models.AuditLog
	done  chan struct{}

	writeTimeout time.Duration
}

// NewRecorder starts the background writer. Close drains and stops it.
func NewRecorder(store Store, queueSize int, log *zap.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = 256
	}
	r := &Recorder{
		store:        store,
		log:          log,
		queue:        make(chan models.AuditLog, queueSize),
		done:         make(chan struct{}),
		writeTimeout: 5 * time.Second,
	}
	go r.run()
	return r
}

// Record enqueues one audit entry on behalf of the resolved caller. Snapshots
// are opaque payloads; previous is nil for creates, next is nil for deletes.
// If the queue is full the entry is dropped and counted, nothing blocks.
func (r *Recorder) Record(authCtx *authz.Context, action, resourceType string, resourceID *uuid.UUID, previous, next any) {
	entry := models.AuditLog{
		HotelID:      authCtx.HotelID,
		ActorType:    actorType(authCtx),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Previous:     previous,
		Next:         next,
		CreatedAt:    time.Now().UTC(),
	}
	if authCtx.HotelID == uuid.Nil {
		entry.HotelID = models.SystemTenantID
	}
	if authCtx.UserID != uuid.Nil {
		userID := authCtx.UserID
		entry.ActorUserID = &userID
		email := authCtx.Email
		entry.ActorEmail = &email
	}
	if authCtx.Role != "" {
		role := authCtx.Role
		entry.ActorRole = &role
	}
	if authCtx.IP != "" {
		ip := authCtx.IP
		entry.IP = &ip
	}
	if authCtx.UserAgent != "" {
		ua := authCtx.UserAgent
		entry.UserAgent = &ua
	}

	select {
	case r.queue <- entry:
	default:
		metrics.AuditWriteFailures.Inc()
		r.log.Warn("audit queue full, dropping entry",
			zap.String("action", action),
			zap.String("resource_type", resourceType),
		)
	}
}

// Close stops accepting entries, drains the queue and waits for the writer.
func (r *Recorder) Close() {
	close(r.queue)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for entry := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		err := r.store.Insert(ctx, entry)
		cancel()
		if err != nil {
			metrics.AuditWriteFailures.Inc()
			r.log.Error("audit write failed",
				zap.String("action", entry.Action),
				zap.String("resource_type", entry.ResourceType),
				zap.Error(err),
			)
		}
	}
}

func actorType(authCtx *authz.Context) string {
	switch {
	case authCtx.UserID == uuid.Nil:
		return models.ActorTypeSystem
	case authCtx.Superuser:
		return models.ActorTypeSuperuser
	default:
		return models.ActorTypeUser
	}
}
