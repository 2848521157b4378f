package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"Tour not found."`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully!"`
}
