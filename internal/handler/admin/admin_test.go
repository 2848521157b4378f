package admin

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/middleware"
	"north-trips/internal/model"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type okValidator struct{}

func (okValidator) Validate(any) error { return nil }

var admin = &service.CustomClaims{UserID: 99, Role: model.RoleAdmin}

func restore() {
	getDashboard = service.GetDashboard
	listTours = service.ListTours
	getTour = service.GetTour
	createTour = service.CreateTour
	updateTour = service.UpdateTour
	deleteTour = service.DeleteTour
	listAllBookings = service.ListAllBookings
	exportBookings = service.ExportBookings
	confirmBooking = service.ConfirmBooking
	adminCancelBooking = service.AdminCancelBooking
}

func newCtx(req *http.Request, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = okValidator{}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	c.Set(middleware.ContextUserKey, admin)
	return c, rec
}

func get(id string) (echo.Context, *httptest.ResponseRecorder) {
	return newCtx(httptest.NewRequest(http.MethodGet, "/", nil), id)
}

func multipartTour(t *testing.T, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := map[string]string{
		"name": "Khaplu", "description": "d", "price": "40000", "region": "Baltistan",
		"duration": "6 days", "difficulty": "Moderate", "featured": "on",
		"tour_type": "group", "available_seats": "12", "group_start_date": "2025-07-05",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "khaplu.jpg")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestDashboardHandler(t *testing.T) {
	t.Cleanup(restore)
	getDashboard = func(context.Context, database.DB, *service.CustomClaims) (*service.Dashboard, error) {
		return &service.Dashboard{TotalUsers: 3, PendingBookings: 1}, nil
	}
	ctx, rec := get("")
	require.NoError(t, DashboardHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"total_users":3`)
}

func TestCreateTourHandler(t *testing.T) {
	t.Cleanup(restore)
	var got service.TourInput
	createTour = func(_ context.Context, _ database.DB, _ cache.Cache, _ *service.CustomClaims, in service.TourInput) (*model.Tour, error) {
		got = in
		return &model.Tour{ID: 6, Name: in.Name}, nil
	}

	ctx, rec := newCtx(multipartTour(t, []byte("img")), "")
	require.NoError(t, CreateTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Khaplu", got.Name)
	require.Equal(t, 40000.0, got.Price)
	require.True(t, got.Featured)
	require.Equal(t, model.TourTypeGroup, got.TourType)
	require.Equal(t, 12, got.AvailableSeats)
	require.Equal(t, "2025-07-05", got.GroupStartDate)
	require.Equal(t, []byte("img"), got.Image)

	createTour = func(context.Context, database.DB, cache.Cache, *service.CustomClaims, service.TourInput) (*model.Tour, error) {
		return nil, service.ErrInvalidImage
	}
	ctx, rec = newCtx(multipartTour(t, []byte("not an image")), "")
	require.NoError(t, CreateTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTourHandler(t *testing.T) {
	t.Cleanup(restore)
	updateTour = func(_ context.Context, _ database.DB, _ cache.Cache, _ *service.CustomClaims, id int, in service.TourInput) (*model.Tour, error) {
		if id != 6 {
			return nil, service.ErrTourNotFound
		}
		require.Nil(t, in.Image)
		return &model.Tour{ID: id, Name: in.Name}, nil
	}

	ctx, rec := newCtx(multipartTour(t, nil), "6")
	require.NoError(t, UpdateTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	// 非 multipart 也能更新，只是沒有圖片
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Khaplu&description=d"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	ctx, rec = newCtx(req, "6")
	require.NoError(t, UpdateTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = newCtx(multipartTour(t, nil), "7")
	require.NoError(t, UpdateTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTourReadAndDeleteHandlers(t *testing.T) {
	t.Cleanup(restore)
	listTours = func(context.Context, database.DB, cache.Cache) ([]model.Tour, error) {
		return []model.Tour{{ID: 1}}, nil
	}
	getTour = func(_ context.Context, _ database.DB, id int) (*model.Tour, error) {
		return &model.Tour{ID: id, Name: "Hunza"}, nil
	}
	deleteTour = func(_ context.Context, _ database.DB, _ cache.Cache, _ *service.CustomClaims, id int) error {
		if id == 1 {
			return nil
		}
		return service.ErrTourNotFound
	}

	ctx, rec := get("")
	require.NoError(t, ListToursHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, rec = get("2")
	require.NoError(t, GetTourHandler(&database.FakeDB{})(ctx))
	require.Contains(t, rec.Body.String(), "Hunza")

	ctx, rec = get("1")
	require.NoError(t, DeleteTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	ctx, rec = get("2")
	require.NoError(t, DeleteTourHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandlers(t *testing.T) {
	t.Cleanup(restore)
	listAllBookings = func(context.Context, database.DB, *service.CustomClaims) ([]model.BookingDetail, error) {
		return []model.BookingDetail{{Booking: model.Booking{ID: 1}, UserName: "Alice"}}, nil
	}
	exportBookings = func(context.Context, database.DB, *service.CustomClaims) ([]byte, error) {
		return []byte("PK\x03\x04"), nil
	}
	confirmBooking = func(_ context.Context, _ database.DB, _ *service.CustomClaims, id int) error {
		if id == 2 {
			return service.ErrInvalidTransition
		}
		return nil
	}
	adminCancelBooking = func(_ context.Context, _ database.DB, _ cache.Cache, _ *service.CustomClaims, id int) error {
		if id == 3 {
			return service.ErrBookingNotFound
		}
		return nil
	}

	ctx, rec := get("")
	require.NoError(t, ListBookingsHandler(&database.FakeDB{})(ctx))
	require.Contains(t, rec.Body.String(), "Alice")

	ctx, rec = get("")
	require.NoError(t, ExportBookingsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, mimeXLSX, rec.Header().Get(echo.HeaderContentType))
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "bookings.xlsx")

	ctx, rec = get("1")
	require.NoError(t, ConfirmBookingHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	ctx, rec = get("2")
	require.NoError(t, ConfirmBookingHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusConflict, rec.Code)

	ctx, rec = get("1")
	require.NoError(t, CancelBookingHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	ctx, rec = get("3")
	require.NoError(t, CancelBookingHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
