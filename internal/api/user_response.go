package api

import (
	"time"

	"north-trips/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"42"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	Phone     *string   `json:"phone,omitempty" example:"0300-1234567"`
	Address   *string   `json:"address,omitempty" example:"Mall Road, Lahore"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// swagger:model api.ProfileResponse
type ProfileResponse struct {
	User     UserResponse    `json:"user"`
	Bookings []model.Booking `json:"bookings"`
}
