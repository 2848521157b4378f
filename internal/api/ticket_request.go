package api

// swagger:model api.TicketRequest
type TicketRequest struct {
	Subject string `form:"subject" json:"subject" validate:"required" example:"Change of dates"`
	Message string `form:"message" json:"message" validate:"required" example:"Can I move my booking to July?"`
}

// swagger:model api.TicketResponseRequest
type TicketResponseRequest struct {
	TicketID int    `form:"ticket_id" json:"ticket_id" validate:"required,gt=0" example:"7"`
	Response string `form:"response" json:"response" validate:"required" example:"Done, see you in July."`
}
