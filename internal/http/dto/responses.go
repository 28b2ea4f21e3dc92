package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type MeResponse struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	HotelID   *string `json:"hotel_id,omitempty"`
	Role      string  `json:"role,omitempty"`
	Superuser bool    `json:"superuser,omitempty"`
}
