package admin

import (
	"net/http"

	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var getDashboard = service.GetDashboard

// @Summary     Admin dashboard
// @Description 使用者、行程、待確認訂單、未結工單數量與最近 5 筆訂單
// @Tags        admin
// @Produce     json
// @Success     200 {object} service.Dashboard
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_dashboard [get]
func DashboardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		d, err := getDashboard(c.Request().Context(), db, middleware.CurrentUser(c))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, d)
	}
}
