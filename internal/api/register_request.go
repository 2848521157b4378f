package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name     string `form:"name" json:"name" validate:"required" example:"Alice"`
	Email    string `form:"email" json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `form:"password" json:"password" validate:"required,min=6" example:"Secret123!"`
	Phone    string `form:"phone" json:"phone" example:"0300-1234567"`
	Address  string `form:"address" json:"address" example:"Mall Road, Lahore"`
}

// swagger:model api.ProfileRequest
type ProfileRequest struct {
	Name    string `form:"name" json:"name" validate:"required" example:"Alice"`
	Phone   string `form:"phone" json:"phone" example:"0300-1234567"`
	Address string `form:"address" json:"address" example:"Mall Road, Lahore"`
}
