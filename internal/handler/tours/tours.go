package tours

import (
	"net/http"

	"north-trips/internal/api"
	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	listFeaturedTours = service.ListFeaturedTours
	listTours         = service.ListTours
	getTour           = service.GetTour
	getTourImage      = service.GetTourImage
)

// HomeHandler 首頁：精選行程與目前的角色
// @Summary     Home
// @Tags        tours
// @Produce     json
// @Success     200 {object} api.HomeResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      / [get]
func HomeHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		tours, err := listFeaturedTours(c.Request().Context(), db, cch)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.HomeResponse{
			Role:          string(service.RoleOf(middleware.CurrentUser(c))),
			FeaturedTours: tours,
		})
	}
}

// ListToursHandler 全部行程，新到舊
// @Summary     List tours
// @Tags        tours
// @Produce     json
// @Success     200 {array}  model.Tour
// @Failure     500 {object} api.ErrorResponse
// @Router      /tours [get]
func ListToursHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		tours, err := listTours(c.Request().Context(), db, cch)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, tours)
	}
}

// GetTourHandler 行程詳細
// @Summary     Tour detail
// @Tags        tours
// @Produce     json
// @Param       id  path     int true "行程 ID"
// @Success     200 {object} model.Tour
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /tour/{id} [get]
func GetTourHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		tour, err := getTour(c.Request().Context(), db, id)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, tour)
	}
}

// TourImageHandler 行程圖片原始位元組
// @Summary     Tour image
// @Tags        tours
// @Produce     image/jpeg
// @Param       id  path int true "行程 ID"
// @Success     200 {file} binary
// @Failure     404 {object} api.ErrorResponse
// @Router      /tour/{id}/image [get]
func TourImageHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c)
		if err != nil {
			return handler.BadRequest(c, "invalid tour ID")
		}
		img, err := getTourImage(c.Request().Context(), db, id)
		if err != nil {
			return handler.Error(c, err)
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")
		return c.Blob(http.StatusOK, http.DetectContentType(img), img)
	}
}
