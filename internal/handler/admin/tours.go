package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"north-trips/internal/api"
	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/model"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	listTours  = service.ListTours
	getTour    = service.GetTour
	createTour = service.CreateTour
	updateTour = service.UpdateTour
	deleteTour = service.DeleteTour
)

// tourInput 讀取 multipart 表單；沒有上傳圖片時 Image 為 nil
func tourInput(c echo.Context) (service.TourInput, error) {
	var req api.TourRequest
	if err := handler.BindAndValidate(c, &req); err != nil {
		return service.TourInput{}, err
	}
	in := service.TourInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Region:         req.Region,
		Duration:       req.Duration,
		Difficulty:     req.Difficulty,
		Featured:       req.IsFeatured(),
		TourType:       model.TourType(req.TourType),
		AvailableSeats: req.AvailableSeats,
		GroupStartDate: req.GroupStartDate,
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil
	case err != nil:
		return in, fmt.Errorf("invalid image upload: %w", err)
	}
	f, err := fh.Open()
	if err != nil {
		return in, fmt.Errorf("invalid image upload: %w", err)
	}
	defer f.Close()
	if in.Image, err = io.ReadAll(f); err != nil {
		return in, fmt.Errorf("invalid image upload: %w", err)
	}
	return in, nil
}

// @Summary     List tours (admin)
// @Tags        admin
// @Produce     json
// @Success     200 {array} model.Tour
// @Security    ApiKeyAuth
// @Router      /admin_tours [get]
func ListToursHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		tours, err := listTours(c.Request().Context(), db, cch)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, tours)
	}
}

// @Summary     Create tour
// @Description 新增行程；圖片會縮到 1200px 寬並轉成 JPEG
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Param       name             formData string  true  "名稱"
// @Param       description      formData string  true  "說明"
// @Param       price            formData number  true  "價格 (PKR)"
// @Param       region           formData string  true  "地區"
// @Param       duration         formData string  true  "天數"
// @Param       difficulty       formData string  true  "難度"
// @Param       featured         formData string  false "精選 (on)"
// @Param       tour_type        formData string  false "private 或 group"
// @Param       available_seats  formData int     false "座位數，0 表示不控管"
// @Param       group_start_date formData string  false "團體出發日 (YYYY-MM-DD)"
// @Param       image            formData file    false "圖片"
// @Success     201 {object} model.Tour
// @Failure     400 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_tours [post]
func CreateTourHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, err := tourInput(c)
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		t, err := createTour(c.Request().Context(), db, cch, middleware.CurrentUser(c), in)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, t)
	}
}

// @Summary     Get tour for editing
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "行程 ID"
// @Success     200 {object} model.Tour
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_edit_tour/{id} [get]
func GetTourHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		t, err := getTour(c.Request().Context(), db, id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

// @Summary     Update tour
// @Description 未上傳圖片時保留原圖
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Param       id  path     int true "行程 ID"
// @Success     200 {object} model.Tour
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_edit_tour/{id} [post]
func UpdateTourHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		in, err := tourInput(c)
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}
		t, err := updateTour(c.Request().Context(), db, cch, middleware.CurrentUser(c), id, in)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

// @Summary     Delete tour
// @Description 既有訂單保留行程名稱
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "行程 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_delete_tour/{id} [get]
func DeleteTourHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		if err := deleteTour(c.Request().Context(), db, cch, middleware.CurrentUser(c), id); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Tour deleted successfully!"})
	}
}
