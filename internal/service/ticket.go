package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"north-trips/internal/database"
	"north-trips/internal/model"
	"north-trips/internal/store"
)

var (
	createTicket      = store.CreateTicket
	listTicketDetails = store.ListTicketDetails
	getTicketStatus   = store.GetTicketStatus
	closeTicket       = store.CloseTicket
)

func CreateTicket(ctx context.Context, db database.DB, actor *CustomClaims, subject, message string) (*model.SupportTicket, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	t, err := createTicket(ctx, db, &model.SupportTicket{
		UserID:  actor.UserID,
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
		Status:  model.TicketOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("CreateTicket: %w", err)
	}
	return t, nil
}

func ListTickets(ctx context.Context, db database.DB, actor *CustomClaims) ([]model.SupportTicketDetail, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	tickets, err := listTicketDetails(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("ListTickets: %w", err)
	}
	return tickets, nil
}

// RespondTicket 回覆並關閉工單；每張工單只能關閉一次
func RespondTicket(ctx context.Context, db database.DB, actor *CustomClaims, ticketID int, response string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	closed, err := closeTicket(ctx, db, ticketID, strings.TrimSpace(response))
	if err != nil {
		return fmt.Errorf("RespondTicket: %w", err)
	}
	if closed {
		return nil
	}

	// 沒有更新到任何列：區分不存在與已關閉
	if _, err := getTicketStatus(ctx, db, ticketID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTicketNotFound
		}
		return fmt.Errorf("RespondTicket: %w", err)
	}
	return ErrInvalidTransition
}
