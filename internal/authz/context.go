package authz

import (
	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/rbac"
)

// Context is the resolved identity for one request. The guard builds it once;
// downstream code reads it and never re-resolves identity. HotelID is
// uuid.Nil only for superuser sessions without an active hotel.
type Context struct {
	UserID    uuid.UUID
	Email     string
	HotelID   uuid.UUID
	Role      rbac.Role
	Superuser bool

	// Network origin of the request, for audit records. Empty for background
	// actors.
	IP        string
	UserAgent string
}

// System returns the actor used by background jobs: superuser-flagged,
// scoped to the given hotel.
func System(hotelID uuid.UUID) *Context {
	return &Context{
		Email:     "system@hotelops",
		HotelID:   hotelID,
		Superuser: true,
	}
}
