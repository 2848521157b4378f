// File: internal/model/support_ticket.go
package model

import "time"

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type SupportTicket struct {
	ID            int          `db:"id" json:"id"`
	UserID        int          `db:"user_id" json:"user_id"`
	Subject       string       `db:"subject" json:"subject"`
	Message       string       `db:"message" json:"message"`
	Status        TicketStatus `db:"status" json:"status"`
	AdminResponse *string      `db:"admin_response" json:"admin_response,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

type SupportTicketDetail struct {
	SupportTicket
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}
