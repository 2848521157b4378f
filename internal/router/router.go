package router

import (
	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/handler/admin"
	"north-trips/internal/handler/auth"
	"north-trips/internal/handler/bookings"
	"north-trips/internal/handler/tickets"
	"north-trips/internal/handler/tours"
	"north-trips/internal/handler/users"
	"north-trips/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, renderer bookings.InvoiceRenderer, opts auth.Options) {
	optional := middleware.OptionalAuth(cch)
	user := middleware.RequireAuth(cch)
	adminOnly := middleware.RequireAdmin(cch)

	// 公開頁面
	e.GET("/", tours.HomeHandler(db, cch), optional)
	e.GET("/tours", tours.ListToursHandler(db, cch))
	e.GET("/tour/:id", tours.GetTourHandler(db))
	e.GET("/tour/:id/image", tours.TourImageHandler(db))
	e.GET("/about", handler.AboutHandler())
	e.GET("/contact", tickets.ContactPageHandler())
	e.POST("/contact", tickets.CreateTicketHandler(db), user)

	// 登入、註冊、登出
	e.GET("/login", auth.LoginPageHandler())
	e.POST("/login", auth.LoginHandler(db, opts))
	e.GET("/register", auth.RegisterPageHandler())
	e.POST("/register", auth.RegisterHandler(db))
	e.GET("/logout", auth.LogoutHandler(cch, opts), optional)

	// 一般使用者
	e.GET("/profile", users.GetProfileHandler(db), user)
	e.POST("/profile", users.UpdateProfileHandler(db), user)
	e.GET("/book/:id", bookings.BookingFormHandler(db), user)
	e.POST("/book/:id", bookings.CreateBookingHandler(db, cch), user)
	e.GET("/cancel_booking/:id", bookings.CancelBookingHandler(db, cch), user)
	e.GET("/download_invoice/:id", bookings.InvoiceHandler(db, renderer), user)

	// 管理員
	e.GET("/admin_dashboard", admin.DashboardHandler(db), adminOnly)
	e.GET("/admin_tours", admin.ListToursHandler(db, cch), adminOnly)
	e.POST("/admin_tours", admin.CreateTourHandler(db, cch), adminOnly)
	e.GET("/admin_edit_tour/:id", admin.GetTourHandler(db), adminOnly)
	e.POST("/admin_edit_tour/:id", admin.UpdateTourHandler(db, cch), adminOnly)
	e.GET("/admin_delete_tour/:id", admin.DeleteTourHandler(db, cch), adminOnly)
	e.GET("/admin_bookings", admin.ListBookingsHandler(db), adminOnly)
	e.GET("/admin_bookings/export", admin.ExportBookingsHandler(db), adminOnly)
	e.GET("/admin_confirm_booking/:id", admin.ConfirmBookingHandler(db), adminOnly)
	e.GET("/admin_cancel_booking/:id", admin.CancelBookingHandler(db, cch), adminOnly)
	e.GET("/admin_tickets", tickets.ListTicketsHandler(db), adminOnly)
	e.POST("/admin_tickets", tickets.RespondTicketHandler(db), adminOnly)
	e.GET("/admin_users", users.ListUsersHandler(db), adminOnly)
	e.GET("/admin_delete_user/:id", users.DeleteUserHandler(db), adminOnly)

	// 維運
	e.GET("/ping", handler.PingHandler(db, cch))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
