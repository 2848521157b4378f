package auth

import (
	"net/http"
	"time"

	"north-trips/internal/api"
	"north-trips/internal/cache"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var revokeToken = service.RevokeToken

// LogoutHandler 把 token 列入黑名單並清除 cookie；沒有登入時不做事
// @Summary     Logout
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Security    ApiKeyAuth
// @Router      /logout [get]
func LogoutHandler(cch cache.Cache, opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims := middleware.CurrentUser(c); claims != nil {
			if err := revokeToken(c.Request().Context(), cch, claims); err != nil {
				logrus.WithError(err).WithField("user_id", claims.UserID).Error("revoke token failed")
			}
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   opts.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "You have been logged out."})
	}
}
