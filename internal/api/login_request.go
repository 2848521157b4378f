package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `form:"password" json:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int    `json:"expires_in" example:"86400"`
	Role        string `json:"role" example:"user"`
}
