package service

import (
	"context"
	"fmt"

	"north-trips/internal/database"
	"north-trips/internal/model"
	"north-trips/internal/store"
)

const recentBookingsLimit = 5

var (
	countUsers    = store.CountUsers
	countTours    = store.CountTours
	countBookings = store.CountBookings
	countTickets  = store.CountTickets
)

// Dashboard 後台首頁統計
type Dashboard struct {
	TotalUsers      int                   `json:"total_users"`
	TotalTours      int                   `json:"total_tours"`
	PendingBookings int                   `json:"pending_bookings"`
	OpenTickets     int                   `json:"open_tickets"`
	RecentBookings  []model.BookingDetail `json:"recent_bookings"`
}

func GetDashboard(ctx context.Context, db database.DB, actor *CustomClaims) (*Dashboard, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	var (
		d   Dashboard
		err error
	)
	if d.TotalUsers, err = countUsers(ctx, db, model.RoleUser); err != nil {
		return nil, fmt.Errorf("GetDashboard: %w", err)
	}
	if d.TotalTours, err = countTours(ctx, db); err != nil {
		return nil, fmt.Errorf("GetDashboard: %w", err)
	}
	if d.PendingBookings, err = countBookings(ctx, db, model.BookingPending); err != nil {
		return nil, fmt.Errorf("GetDashboard: %w", err)
	}
	if d.OpenTickets, err = countTickets(ctx, db, model.TicketOpen); err != nil {
		return nil, fmt.Errorf("GetDashboard: %w", err)
	}
	if d.RecentBookings, err = listBookingDetails(ctx, db, recentBookingsLimit); err != nil {
		return nil, fmt.Errorf("GetDashboard: %w", err)
	}
	return &d, nil
}
