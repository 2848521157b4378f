package users

import (
	"net/http"

	"north-trips/internal/api"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	getProfile    = service.GetProfile
	updateProfile = service.UpdateProfile
	listUsers     = service.ListUsers
	deleteUser    = service.DeleteUser
)

// @Summary     Get current user profile
// @Description 透過 JWT 取得當前使用者資料與其訂單 (新到舊)
// @Tags        users
// @Produce     json
// @Success     200 {object} api.ProfileResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /profile [get]
func GetProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := getProfile(c.Request().Context(), db, middleware.CurrentUser(c))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.ProfileResponse{
			User:     api.NewUserResponse(p.User),
			Bookings: p.Bookings,
		})
	}
}

// @Summary     Update current user profile
// @Description 更新姓名、電話與地址；空白的電話或地址會被清除
// @Tags        users
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name    formData string true  "姓名"
// @Param       phone   formData string false "電話"
// @Param       address formData string false "地址"
// @Success     200     {object} api.UserResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     401     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /profile [post]
func UpdateProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ProfileRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := updateProfile(c.Request().Context(), db, middleware.CurrentUser(c), service.ProfileInput{
			Name:    req.Name,
			Phone:   &req.Phone,
			Address: &req.Address,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}
