package api

import "north-trips/internal/model"

// swagger:model api.HomeResponse
type HomeResponse struct {
	Role          string       `json:"role" example:"anonymous"`
	FeaturedTours []model.Tour `json:"featured_tours"`
}

// swagger:model api.AboutResponse
type AboutResponse struct {
	Company string `json:"company" example:"North Trips and Travel"`
	Email   string `json:"email" example:"admin@northtripsandtravel.com"`
	About   string `json:"about"`
}

// swagger:model api.FormResponse
type FormResponse struct {
	Fields []string `json:"fields" example:"email,password"`
}
