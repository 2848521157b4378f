package handler

import (
	"errors"
	"net/http"
	"strconv"

	"north-trips/internal/api"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "An error occurred. Please try again."

// StatusOf service 錯誤對應的 HTTP 狀態碼
func StatusOf(c echo.Context, err error) int {
	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest
	case service.IsNotFound(err):
		return http.StatusNotFound
	case service.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		if middleware.CurrentUser(c) == nil {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case errors.Is(err, service.ErrRender):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error 寫出錯誤回應；未預期的錯誤只記錄在 log，不回傳細節
func Error(c echo.Context, err error) error {
	status := StatusOf(c, err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).Error("request failed")
		msg = internalErrorMessage
	case http.StatusServiceUnavailable:
		logrus.WithError(err).WithField("path", c.Path()).Warn("dependency unavailable")
		msg = service.ErrRender.Error()
	}
	return c.JSON(status, api.ErrorResponse{Message: msg})
}

// BadRequest 表單綁定或驗證失敗
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

// ParamID 讀取路徑上的 :id
func ParamID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// BindAndValidate 先 Bind 再交給 validator 檢查
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid form data")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
