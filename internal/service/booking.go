package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/metrics"
	"north-trips/internal/model"
	"north-trips/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	withTx              = database.WithTx
	getTourForUpdate    = store.GetTourForUpdate
	reserveSeats        = store.ReserveSeats
	releaseSeats        = store.ReleaseSeats
	createBooking       = store.CreateBooking
	getBookingForUpdate = store.GetBookingForUpdate
	updateBookingState  = store.UpdateBookingState
	deleteBooking       = store.DeleteBooking
	listBookingDetails  = store.ListBookingDetails
)

// BookingInput 建立訂單的輸入；TourDate 為 YYYY-MM-DD 字串
type BookingInput struct {
	TourID       int
	Participants int
	TourDate     string
}

// BookingForm 訂票頁需要的資訊
type BookingForm struct {
	Tour model.Tour `json:"tour"`
	// 團體行程固定出發日，其餘為空
	RequiredDate string `json:"required_date,omitempty"`
	// 團體行程有控管座位時的剩餘座位數
	SeatsLeft *int `json:"seats_left,omitempty"`
}

// GetBookingForm 讀取行程並整理訂票限制
func GetBookingForm(ctx context.Context, db database.DB, tourID int) (*BookingForm, error) {
	tour, err := getTour(ctx, db, tourID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("GetBookingForm: %w", err)
	}
	form := &BookingForm{Tour: *tour}
	if tour.IsGroup() {
		form.RequiredDate = tour.StartDate()
		if tour.ManagesSeats() {
			seats := tour.AvailableSeats
			form.SeatsLeft = &seats
		}
	}
	return form, nil
}

func rejected(reason string, err error) error {
	metrics.BookingRejections.WithLabelValues(reason).Inc()
	return err
}

// CreateBooking 在同一交易中鎖定行程、檢查座位與日期、寫入訂單並扣座位
func CreateBooking(ctx context.Context, db database.DB, c cache.Cache, actor *CustomClaims, in BookingInput) (*model.Booking, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	if in.Participants <= 0 {
		return nil, rejected("participants", ErrInvalidParticipants)
	}
	tourDate, err := time.Parse(model.DateLayout, in.TourDate)
	if err != nil {
		return nil, rejected("date", ErrInvalidDate)
	}

	var booking *model.Booking
	seatsChanged := false
	err = withTx(ctx, db, func(q database.Querier) error {
		tour, err := getTourForUpdate(ctx, q, in.TourID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTourNotFound
			}
			return err
		}

		held := 0
		if tour.IsGroup() {
			if tour.ManagesSeats() && in.Participants > tour.AvailableSeats {
				return &CapacityError{Available: tour.AvailableSeats}
			}
			if required := tour.StartDate(); required != "" && in.TourDate != required {
				return &DateError{Required: required}
			}
			if tour.ManagesSeats() {
				ok, err := reserveSeats(ctx, q, tour.ID, in.Participants)
				if err != nil {
					return err
				}
				if !ok {
					return &CapacityError{Available: tour.AvailableSeats}
				}
				held = in.Participants
			}
		}

		b, err := createBooking(ctx, q, &model.Booking{
			UserID:       actor.UserID,
			TourID:       tour.ID,
			TourName:     tour.Name,
			TourDate:     tourDate,
			Participants: in.Participants,
			TotalPrice:   float64(in.Participants) * tour.Price,
			Status:       model.BookingPending,
			SeatsHeld:    held,
		})
		if err != nil {
			return err
		}
		booking = b
		seatsChanged = held > 0
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTourNotFound):
			return nil, rejected("not_found", err)
		case errors.Is(err, ErrCapacityExceeded):
			return nil, rejected("capacity", err)
		case errors.Is(err, ErrInvalidDate):
			return nil, rejected("date", err)
		}
		return nil, fmt.Errorf("CreateBooking: %w", err)
	}

	metrics.BookingsCreated.Inc()
	if seatsChanged {
		invalidateTours(ctx, c)
	}
	logrus.WithFields(logrus.Fields{
		"booking_id":   booking.ID,
		"user_id":      booking.UserID,
		"tour_id":      booking.TourID,
		"participants": booking.Participants,
	}).Info("booking created")
	return booking, nil
}

// refund 歸還訂單持有的座位並歸零，回傳是否真的歸還
func refund(ctx context.Context, q database.Querier, b *model.Booking) (bool, error) {
	if b.SeatsHeld <= 0 {
		return false, nil
	}
	if err := releaseSeats(ctx, q, b.TourID, b.SeatsHeld); err != nil {
		return false, err
	}
	metrics.SeatsReleased.Add(float64(b.SeatsHeld))
	b.SeatsHeld = 0
	return true, nil
}

// CancelBooking 使用者取消自己尚未被確認的 pending 訂單；座位歸還後刪除訂單
func CancelBooking(ctx context.Context, db database.DB, c cache.Cache, actor *CustomClaims, bookingID int) error {
	if err := RequireUser(actor); err != nil {
		return err
	}

	refunded := false
	err := withTx(ctx, db, func(q database.Querier) error {
		b, err := getBookingForUpdate(ctx, q, bookingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %w", ErrCannotCancel, ErrBookingNotFound)
			}
			return err
		}
		if b.UserID != actor.UserID || !b.UserCancellable() {
			return ErrCannotCancel
		}
		if refunded, err = refund(ctx, q, b); err != nil {
			return err
		}
		return deleteBooking(ctx, q, b.ID)
	})
	if err != nil {
		if errors.Is(err, ErrCannotCancel) {
			logrus.WithFields(logrus.Fields{
				"booking_id": bookingID,
				"user_id":    actor.UserID,
			}).WithError(err).Debug("cancel refused")
			return ErrCannotCancel
		}
		return fmt.Errorf("CancelBooking: %w", err)
	}

	metrics.BookingsCancelled.WithLabelValues("user").Inc()
	if refunded {
		invalidateTours(ctx, c)
	}
	return nil
}

// ConfirmBooking pending -> confirmed；已確認時不做事，已取消的訂單不可確認
func ConfirmBooking(ctx context.Context, db database.DB, actor *CustomClaims, bookingID int) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}

	changed := false
	err := withTx(ctx, db, func(q database.Querier) error {
		b, err := getBookingForUpdate(ctx, q, bookingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		switch b.Status {
		case model.BookingConfirmed:
			return nil
		case model.BookingCancelled:
			return ErrInvalidTransition
		}
		b.Status = model.BookingConfirmed
		b.AdminConfirmed = true
		changed = true
		return updateBookingState(ctx, q, b)
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrInvalidTransition) {
			return err
		}
		return fmt.Errorf("ConfirmBooking: %w", err)
	}
	if changed {
		metrics.BookingsConfirmed.Inc()
	}
	return nil
}

// AdminCancelBooking pending/confirmed -> cancelled，保留紀錄並歸還座位；已取消時不做事
func AdminCancelBooking(ctx context.Context, db database.DB, c cache.Cache, actor *CustomClaims, bookingID int) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}

	changed, refunded := false, false
	err := withTx(ctx, db, func(q database.Querier) error {
		b, err := getBookingForUpdate(ctx, q, bookingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.Status == model.BookingCancelled {
			return nil
		}
		if refunded, err = refund(ctx, q, b); err != nil {
			return err
		}
		b.Status = model.BookingCancelled
		b.AdminConfirmed = false
		changed = true
		return updateBookingState(ctx, q, b)
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return err
		}
		return fmt.Errorf("AdminCancelBooking: %w", err)
	}

	if changed {
		metrics.BookingsCancelled.WithLabelValues("admin").Inc()
	}
	if refunded {
		invalidateTours(ctx, c)
	}
	return nil
}

func ListUserBookings(ctx context.Context, db database.DB, actor *CustomClaims) ([]model.Booking, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	bookings, err := listBookingsByUser(ctx, db, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("ListUserBookings: %w", err)
	}
	return bookings, nil
}

// ListAllBookings 後台列表，含已取消與使用者已刪除的訂單
func ListAllBookings(ctx context.Context, db database.DB, actor *CustomClaims) ([]model.BookingDetail, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	bookings, err := listBookingDetails(ctx, db, 0)
	if err != nil {
		return nil, fmt.Errorf("ListAllBookings: %w", err)
	}
	return bookings, nil
}
