package service

import (
	"errors"
	"fmt"
)

// 驗證錯誤 (400)
var (
	ErrInvalidParticipants = errors.New("Number of participants must be greater than zero.")
	ErrInvalidDate         = errors.New("Invalid tour date. Use YYYY-MM-DD.")
	ErrInvalidImage        = errors.New("uploaded file is not a supported image")
	ErrInvalidTour         = errors.New("invalid tour data")
)

// 查無資料 (404)
var (
	ErrTourNotFound    = errors.New("Tour not found.")
	ErrBookingNotFound = errors.New("Booking not found.")
	ErrTicketNotFound  = errors.New("Ticket not found.")
	ErrUserNotFound    = errors.New("User not found.")
	ErrImageNotFound   = errors.New("Tour has no image.")
)

// 狀態衝突 (409)
var (
	ErrCapacityExceeded  = errors.New("not enough seats available")
	ErrCannotCancel      = errors.New("Cannot cancel confirmed or processed bookings.")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAdminUndeletable  = errors.New("Cannot delete admin user.")
	ErrEmailTaken        = errors.New("Email already registered.")
)

// 身分驗證 (401/403)
var (
	ErrUnauthorized       = errors.New("Unauthorized access.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
)

// ErrRender 發票轉換 PDF 失敗 (503)
var ErrRender = errors.New("Invoice could not be generated.")

// CapacityError 團體行程剩餘座位不足
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Only %d seats available for this group tour.", e.Available)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// DateError 團體行程只接受固定出發日
type DateError struct {
	Required string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("Group tour must be booked for the specified start date: %s", e.Required)
}

func (e *DateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// IsValidation 回報 err 是否屬於輸入驗證錯誤
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidParticipants) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidImage) ||
		errors.Is(err, ErrInvalidTour)
}

// IsNotFound 回報 err 是否屬於查無資料
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTourNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrImageNotFound)
}

// IsConflict 回報 err 是否屬於狀態衝突
func IsConflict(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrCannotCancel) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrAdminUndeletable) ||
		errors.Is(err, ErrEmailTaken)
}
