package auth

import (
	"net/http"
	"time"

	"north-trips/internal/api"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	login    = service.Login
	register = service.Register
)

// Options 發行 token 與 cookie 的設定
type Options struct {
	TokenTTL     time.Duration
	CookieSecure bool
}

func tokenCookie(token string, opts Options) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(opts.TokenTTL),
		MaxAge:   int(opts.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// LoginPageHandler 登入表單欄位
// @Summary     Login form
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.FormResponse
// @Router      /login [get]
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.FormResponse{Fields: []string{"email", "password"}})
	}
}

// LoginHandler 使用 Email/Password 驗證並回傳 JWT，同時寫入 HttpOnly cookie
// @Summary     登入使用者
// @Description 驗證成功回傳存取令牌，並設定 access_token cookie
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.LoginResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		token, user, err := login(c.Request().Context(), db, req.Email, req.Password, opts.TokenTTL)
		if err != nil {
			return handler.Error(c, err)
		}

		c.SetCookie(tokenCookie(token, opts))
		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int(opts.TokenTTL.Seconds()),
			Role:        string(user.Role),
		})
	}
}

// RegisterPageHandler 註冊表單欄位
// @Summary     Register form
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.FormResponse
// @Router      /register [get]
func RegisterPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.FormResponse{Fields: []string{"name", "email", "password", "phone", "address"}})
	}
}

// RegisterHandler 建立一般使用者帳號 (Email 會自動轉小寫)
// @Summary     Register
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name     formData string true  "姓名"
// @Param       email    formData string true  "Email"
// @Param       password formData string true  "密碼 (至少 6 碼)"
// @Param       phone    formData string false "電話"
// @Param       address  formData string false "地址"
// @Success     201      {object} api.UserResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     409      {object} api.ErrorResponse "Email 已註冊"
// @Failure     500      {object} api.ErrorResponse
// @Router      /register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := register(c.Request().Context(), db, service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    &req.Phone,
			Address:  &req.Address,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(*user))
	}
}
