// File: internal/model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID             int           `db:"id" json:"id"`
	UserID         int           `db:"user_id" json:"user_id"`
	TourID         int           `db:"tour_id" json:"tour_id"`
	TourName       string        `db:"tour_name" json:"tour_name"`
	TourDate       time.Time     `db:"tour_date" json:"tour_date"`
	Participants   int           `db:"participants" json:"participants"`
	TotalPrice     float64       `db:"total_price" json:"total_price"`
	Status         BookingStatus `db:"status" json:"status"`
	AdminConfirmed bool          `db:"admin_confirmed" json:"admin_confirmed"`
	// SeatsHeld 此訂單實際從行程座位扣除的數量，退還時以此為準
	SeatsHeld int       `db:"seats_held" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserCancellable 只有尚未被管理員確認的 pending 訂單可由使用者取消
func (b Booking) UserCancellable() bool {
	return b.Status == BookingPending && !b.AdminConfirmed
}

// BookingDetail 後台列表與發票用，附帶使用者資訊
type BookingDetail struct {
	Booking
	UserName    string  `db:"user_name" json:"user_name"`
	UserEmail   string  `db:"user_email" json:"user_email"`
	UserPhone   *string `db:"user_phone" json:"user_phone,omitempty"`
	UserAddress *string `db:"user_address" json:"user_address,omitempty"`
}
