package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SwitchHotelRequest struct {
	HotelID string `json:"hotel_id"`
}

type CreateReservationRequest struct {
	GuestID string `json:"guest_id"`

	RoomTypeID   *string    `json:"room_type_id,omitempty"`
	RoomID       *string    `json:"room_id,omitempty"`
	CheckInDate  *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	ActivityID *string `json:"activity_id,omitempty"`
	SlotID     *string `json:"slot_id,omitempty"`

	GuestCount  int     `json:"guest_count"`
	Currency    string  `json:"currency"`
	TotalAmount string  `json:"total_amount"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateReservationRequest struct {
	RoomID       *string    `json:"room_id,omitempty"`
	CheckInDate  *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`
	GuestCount   *int       `json:"guest_count,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	TotalAmount  *string    `json:"total_amount,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type CreateRoomRequest struct {
	RoomTypeID string `json:"room_type_id"`
	Number     string `json:"number"`
	Floor      int    `json:"floor"`
}

type UpdateRoomRequest struct {
	Number *string `json:"number,omitempty"`
	Floor  *int    `json:"floor,omitempty"`
	Status *string `json:"status,omitempty"`
}

type GuestRequest struct {
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
