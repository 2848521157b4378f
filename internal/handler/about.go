package handler

import (
	"net/http"

	"north-trips/internal/api"

	"github.com/labstack/echo/v4"
)

const aboutText = "North Trips and Travel organises private and group tours across the " +
	"northern areas of Pakistan, from Swat and Kalam to Hunza, Skardu and Fairy Meadows."

// AboutHandler 公司簡介
// @Summary     About
// @Tags        info
// @Produce     json
// @Success     200 {object} api.AboutResponse
// @Router      /about [get]
func AboutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.AboutResponse{
			Company: "North Trips and Travel",
			Email:   "admin@northtripsandtravel.com",
			About:   aboutText,
		})
	}
}
