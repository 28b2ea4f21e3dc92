package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a bookable non-lodging offering (spa slot, tour, dinner
// seating). Bookings reference an activity plus one of its slots.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	HotelID   uuid.UUID `json:"hotel_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	BasePrice string    `json:"base_price"` // numeric as string
	CreatedAt time.Time `json:"created_at"`
}

type ActivitySlot struct {
	ID         uuid.UUID `json:"id"`
	ActivityID uuid.UUID `json:"activity_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}
