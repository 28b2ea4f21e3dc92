package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/rbac"
)

// Audit action verbs
const (
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
	AuditActionConfirm  = "CONFIRM"
	AuditActionCheckIn  = "CHECK_IN"
	AuditActionCheckOut = "CHECK_OUT"
	AuditActionCancel   = "CANCEL"
	AuditActionNoShow   = "NO_SHOW"
)

// Actor types
const (
	ActorTypeUser      = "user"
	ActorTypeSuperuser = "superuser"
	ActorTypeSystem    = "system"
)

// SystemTenantID is the sentinel hotel id stamped on records written without
// an active tenant (superuser-wide or background work).
var SystemTenantID = uuid.Nil

// AuditLog is a write-once record of who did what to which resource. The
// application never mutates or deletes rows.
type AuditLog struct {
	ID           uuid.UUID  `json:"id"`
	HotelID      uuid.UUID  `json:"hotel_id"`
	ActorUserID  *uuid.UUID `json:"actor_user_id,omitempty"`
	ActorEmail   *string    `json:"actor_email,omitempty"`
	ActorRole    *rbac.Role `json:"actor_role,omitempty"`
	ActorType    string     `json:"actor_type"`
	Action       string     `json:"action"`
	ResourceType string     `json:"resource_type"`
	ResourceID   *uuid.UUID `json:"resource_id,omitempty"`
	Previous     any        `json:"previous,omitempty"`
	Next         any        `json:"next,omitempty"`
	IP           *string    `json:"ip,omitempty"`
	UserAgent    *string    `json:"user_agent,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
