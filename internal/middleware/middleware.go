package middleware

import (
	"errors"
	"net/http"
	"strings"

	"north-trips/internal/cache"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	ContextUserKey = "user"
	// CookieName 瀏覽器登入後存放 JWT 的 cookie
	CookieName = "access_token"
	loginPath  = "/login"
)

var (
	errMissingToken = errors.New("missing token")
	errRevokedToken = errors.New("token revoked")
)

var (
	verifyAccessToken = service.VerifyAccessToken
	isRevoked         = service.IsRevoked
)

// TokenFromRequest 優先讀 Authorization: Bearer，其次 access_token cookie
func TokenFromRequest(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errors.New("invalid authorization header format")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value, nil
	}
	return "", errMissingToken
}

func extractClaims(c echo.Context, cch cache.Cache) (*service.CustomClaims, error) {
	tokenString, err := TokenFromRequest(c)
	if err != nil {
		return nil, err
	}
	claims, err := verifyAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := isRevoked(c.Request().Context(), cch, claims)
	if err != nil {
		// 黑名單查不到時拒絕，不讓已登出的 token 通過
		logrus.WithError(err).Warn("token revocation check failed")
		return nil, errRevokedToken
	}
	if revoked {
		return nil, errRevokedToken
	}
	return claims, nil
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

// deny 瀏覽器導向登入頁，API 呼叫回傳狀態碼
func deny(c echo.Context, status int, msg string) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, loginPath)
	}
	return echo.NewHTTPError(status, msg)
}

// CurrentUser 取得已驗證的使用者；匿名時回傳 nil
func CurrentUser(c echo.Context) *service.CustomClaims {
	claims, _ := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims
}

func RequireAuth(cch cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, cch)
			if err != nil {
				return deny(c, http.StatusUnauthorized, "invalid token: "+err.Error())
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

func RequireAdmin(cch cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAuth(cch)(func(c echo.Context) error {
			if !CurrentUser(c).IsAdmin() {
				return deny(c, http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}

// OptionalAuth 有合法 token 時設定使用者，否則以匿名身分繼續
func OptionalAuth(cch cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := extractClaims(c, cch); err == nil {
				c.Set(ContextUserKey, claims)
			}
			return next(c)
		}
	}
}
