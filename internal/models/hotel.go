package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hotelops/backend/internal/rbac"
)

type Hotel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Timezone  string    `json:"timezone"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership ties a user to a hotel with a role. A user may belong to several
// hotels; exactly one is active per session token.
type Membership struct {
	UserID    uuid.UUID `json:"user_id"`
	HotelID   uuid.UUID `json:"hotel_id"`
	Role      rbac.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Superuser    bool      `json:"superuser"`
	CreatedAt    time.Time `json:"created_at"`
}
