package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/middleware"
	"north-trips/internal/model"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type stubValidator struct{ err error }

func (s stubValidator) Validate(i any) error { return s.err }

func restore() {
	login = service.Login
	register = service.Register
	revokeToken = service.RevokeToken
}

func newFormCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var opts = Options{TokenTTL: time.Hour}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restore)

	// bind error
	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec := newFormCtx(e, "")
	require.NoError(t, LoginHandler(&database.FakeDB{}, opts)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = stubValidator{err: errors.New("email is required")}
	ctx, rec = newFormCtx(e, "password=b")
	require.NoError(t, LoginHandler(&database.FakeDB{}, opts)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email is required")

	// wrong credentials
	e = echo.New()
	e.Validator = stubValidator{}
	login = func(context.Context, database.DB, string, string, time.Duration) (string, *model.User, error) {
		return "", nil, service.ErrInvalidCredentials
	}
	ctx, rec = newFormCtx(e, "email=a@b.c&password=x")
	require.NoError(t, LoginHandler(&database.FakeDB{}, opts)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password.")

	// success
	login = func(_ context.Context, _ database.DB, email, password string, ttl time.Duration) (string, *model.User, error) {
		require.Equal(t, "a@b.c", email)
		require.Equal(t, "x", password)
		require.Equal(t, time.Hour, ttl)
		return "tok", &model.User{ID: 1, Role: model.RoleAdmin}, nil
	}
	ctx, rec = newFormCtx(e, "email=a@b.c&password=x")
	require.NoError(t, LoginHandler(&database.FakeDB{}, opts)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"access_token":"tok"`)
	require.Contains(t, rec.Body.String(), `"role":"admin"`)
	cookie := rec.Result().Cookies()[0]
	require.Equal(t, middleware.CookieName, cookie.Name)
	require.Equal(t, "tok", cookie.Value)
	require.True(t, cookie.HttpOnly)
}

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	e.Validator = stubValidator{}

	register = func(_ context.Context, _ database.DB, in service.RegisterInput) (*model.User, error) {
		require.Equal(t, "Alice", in.Name)
		require.NotNil(t, in.Phone)
		return &model.User{ID: 4, Name: in.Name, Email: in.Email, Role: model.RoleUser}, nil
	}
	ctx, rec := newFormCtx(e, "name=Alice&email=alice@example.com&password=secret1&phone=0300")
	require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":4`)
	require.NotContains(t, rec.Body.String(), "password")

	register = func(context.Context, database.DB, service.RegisterInput) (*model.User, error) {
		return nil, service.ErrEmailTaken
	}
	ctx, rec = newFormCtx(e, "name=Alice&email=alice@example.com&password=secret1")
	require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already registered.")
}

func TestFormPages(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, LoginPageHandler()(e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)))
	require.Contains(t, rec.Body.String(), "password")

	rec = httptest.NewRecorder()
	require.NoError(t, RegisterPageHandler()(e.NewContext(httptest.NewRequest(http.MethodGet, "/register", nil), rec)))
	require.Contains(t, rec.Body.String(), "address")
}

func TestLogoutHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	c := cache.NewMemoryCache()

	// 未登入
	called := false
	revokeToken = func(context.Context, cache.Cache, *service.CustomClaims) error { called = true; return nil }
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)
	require.NoError(t, LogoutHandler(c, opts)(ctx))
	require.False(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)

	// 已登入，黑名單寫入失敗仍清除 cookie
	revokeToken = func(_ context.Context, _ cache.Cache, cl *service.CustomClaims) error {
		called = true
		require.Equal(t, "jti-1", cl.ID)
		return errors.New("redis down")
	}
	rec = httptest.NewRecorder()
	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)
	claims := &service.CustomClaims{UserID: 1}
	claims.ID = "jti-1"
	ctx.Set(middleware.ContextUserKey, claims)
	require.NoError(t, LogoutHandler(c, opts)(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}
