package api

import "strings"

// multipart 表單；圖片另外以 c.FormFile("image") 讀取
// swagger:model api.TourRequest
type TourRequest struct {
	Name           string  `form:"name" validate:"required" example:"Kalam Valley Expedition"`
	Description    string  `form:"description" validate:"required" example:"Forests, lakes and waterfalls"`
	Price          float64 `form:"price" validate:"gte=0" example:"38000"`
	Region         string  `form:"region" validate:"required" example:"Swat"`
	Duration       string  `form:"duration" validate:"required" example:"5 days"`
	Difficulty     string  `form:"difficulty" validate:"required" example:"Moderate"`
	Featured       string  `form:"featured" example:"on"`
	TourType       string  `form:"tour_type" validate:"omitempty,oneof=private group" example:"group"`
	AvailableSeats int     `form:"available_seats" validate:"gte=0" example:"10"`
	GroupStartDate string  `form:"group_start_date" example:"2025-06-20"`
}

// IsFeatured 表單 checkbox 送出 "on"
func (r TourRequest) IsFeatured() bool {
	switch strings.ToLower(strings.TrimSpace(r.Featured)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
