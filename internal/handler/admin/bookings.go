package admin

import (
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

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	listAllBookings    = service.ListAllBookings
	exportBookings     = service.ExportBookings
	confirmBooking     = service.ConfirmBooking
	adminCancelBooking = service.AdminCancelBooking
)

// @Summary     List all bookings
// @Tags        admin
// @Produce     json
// @Success     200 {array} model.BookingDetail
// @Security    ApiKeyAuth
// @Router      /admin_bookings [get]
func ListBookingsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		bookings, err := listAllBookings(c.Request().Context(), db, middleware.CurrentUser(c))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, bookings)
	}
}

// @Summary     Export bookings
// @Description 匯出全部訂單為 XLSX
// @Tags        admin
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file} binary
// @Security    ApiKeyAuth
// @Router      /admin_bookings/export [get]
func ExportBookingsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := exportBookings(c.Request().Context(), db, middleware.CurrentUser(c))
		if err != nil {
			return handler.Error(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", service.ExportFilename))
		return c.Blob(http.StatusOK, mimeXLSX, data)
	}
}

// @Summary     Confirm booking
// @Description pending → confirmed；重複確認不報錯，已取消的訂單回傳 409
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "訂單 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_confirm_booking/{id} [get]
func ConfirmBookingHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid booking ID")
		}
		if err := confirmBooking(c.Request().Context(), db, middleware.CurrentUser(c), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking confirmed successfully!"})
	}
}

// @Summary     Cancel booking (admin)
// @Description 標記為 cancelled 並退回座位，訂單紀錄保留
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "訂單 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_cancel_booking/{id} [get]
func CancelBookingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid booking ID")
		}
		if err := adminCancelBooking(c.Request().Context(), db, cch, middleware.CurrentUser(c), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully!"})
	}
}
