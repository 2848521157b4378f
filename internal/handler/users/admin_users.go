package users

import (
	"net/http"

	"north-trips/internal/api"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"

	"github.com/labstack/echo/v4"
)

// @Summary     List users
// @Description 管理員查詢所有使用者，新到舊
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db, middleware.CurrentUser(c))
		if err != nil {
			return handler.Error(c, err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Delete a user by ID
// @Description 管理員刪除一般使用者；管理員帳號不可刪除
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     409 {object} api.ErrorResponse "管理員不可刪除"
// @Security    ApiKeyAuth
// @Router      /admin_delete_user/{id} [get]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid user ID")
		}
		if err := deleteUser(c.Request().Context(), db, middleware.CurrentUser(c), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully."})
	}
}
