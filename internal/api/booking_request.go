package api

// participants 的數值檢查交給 service，以回傳一致的錯誤訊息
// swagger:model api.BookingRequest
type BookingRequest struct {
	Participants int    `form:"participants" json:"participants" example:"4"`
	TourDate     string `form:"tour_date" json:"tour_date" example:"2025-06-20"`
}
