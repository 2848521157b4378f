package bookings

import (
	"context"
	"fmt"
	"net/http"

	"north-trips/internal/api"
	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	getBookingForm = service.GetBookingForm
	createBooking  = service.CreateBooking
	cancelBooking  = service.CancelBooking
)

// InvoiceRenderer 產生訂單發票 PDF
type InvoiceRenderer interface {
	Render(ctx context.Context, db database.DB, actor *service.CustomClaims, bookingID int) (string, []byte, error)
}

// @Summary     Booking form
// @Description 行程資訊與訂票限制 (團體行程的固定出發日與剩餘座位)
// @Tags        bookings
// @Produce     json
// @Param       id  path     int true "行程 ID"
// @Success     200 {object} service.BookingForm
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /book/{id} [get]
func BookingFormHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		form, err := getBookingForm(c.Request().Context(), db, id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, form)
	}
}

// @Summary     Book a tour
// @Description 建立 pending 訂單；團體行程會檢查出發日並扣除座位
// @Tags        bookings
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       id           path     int    true "行程 ID"
// @Param       participants formData int    true "人數"
// @Param       tour_date    formData string true "出發日 (YYYY-MM-DD)"
// @Success     201 {object} model.Booking
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse "座位不足"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /book/{id} [post]
func CreateBookingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		var req api.BookingRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		b, err := createBooking(c.Request().Context(), db, cch, middleware.CurrentUser(c), service.BookingInput{
			TourID:       id,
			Participants: req.Participants,
			TourDate:     req.TourDate,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, b)
	}
}

// @Summary     Cancel own booking
// @Description 只能取消自己尚未確認的 pending 訂單，座位會退回行程
// @Tags        bookings
// @Produce     json
// @Param       id  path     int true "訂單 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cancel_booking/{id} [get]
func CancelBookingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid booking ID")
		}
		if err := cancelBooking(c.Request().Context(), db, cch, middleware.CurrentUser(c), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully!"})
	}
}

// @Summary     Download invoice
// @Description 訂單擁有者下載 PDF 發票
// @Tags        bookings
// @Produce     application/pdf
// @Param       id  path int true "訂單 ID"
// @Success     200 {file} binary
// @Failure     404 {object} api.ErrorResponse
// @Failure     503 {object} api.ErrorResponse "PDF 轉換失敗"
// @Security    ApiKeyAuth
// @Router      /download_invoice/{id} [get]
func InvoiceHandler(db database.DB, renderer InvoiceRenderer) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid booking ID")
		}
		name, pdf, err := renderer.Render(c.Request().Context(), db, middleware.CurrentUser(c), id)
		if err != nil {
			return handler.Error(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", name))
		return c.Blob(http.StatusOK, "application/pdf", pdf)
	}
}
