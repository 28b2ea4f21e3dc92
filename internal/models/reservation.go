package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses
const (
	ReservationStatusPending    = "pending"
	ReservationStatusConfirmed  = "confirmed"
	ReservationStatusCheckedIn  = "checked_in"
	ReservationStatusCheckedOut = "checked_out"
	ReservationStatusCancelled  = "cancelled"
	ReservationStatusNoShow     = "no_show"
)

// Valid state transitions: from -> []to. Terminal statuses map to empty sets.
var ValidReservationTransitions = map[string][]string{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCheckedIn, ReservationStatusCancelled, ReservationStatusNoShow},
	ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
	ReservationStatusCheckedOut: {},
	ReservationStatusCancelled:  {},
	ReservationStatusNoShow:     {},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidReservationTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	allowed, ok := ValidReservationTransitions[status]
	return ok && len(allowed) == 0
}

// Reservation is either a lodging booking (room-type, optional assigned room,
// date range) or an activity booking (activity, slot). Exactly one of the two
// field sets is populated.
type Reservation struct {
	ID      uuid.UUID `json:"id"`
	HotelID uuid.UUID `json:"hotel_id"`
	GuestID uuid.UUID `json:"guest_id"`
	Status  string    `json:"status"`

	// Lodging booking
	RoomTypeID   *uuid.UUID `json:"room_type_id,omitempty"`
	RoomID       *uuid.UUID `json:"room_id,omitempty"`
	CheckInDate  *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	// Activity booking
	ActivityID *uuid.UUID `json:"activity_id,omitempty"`
	SlotID     *uuid.UUID `json:"slot_id,omitempty"`

	GuestCount  int     `json:"guest_count"`
	Currency    string  `json:"currency"`
	TotalAmount string  `json:"total_amount"` // numeric as string
	Notes       *string `json:"notes,omitempty"`

	ConfirmedBy  *uuid.UUID `json:"confirmed_by,omitempty"`
	CancelledBy  *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelReason *string    `json:"cancel_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLodging reports whether the reservation books a room rather than an
// activity slot.
func (r *Reservation) IsLodging() bool {
	return r.RoomTypeID != nil
}
