package tickets

import (
	"net/http"

	"north-trips/internal/api"
	"north-trips/internal/database"
	"north-trips/internal/handler"
	"north-trips/internal/middleware"
	"north-trips/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	createTicket  = service.CreateTicket
	listTickets   = service.ListTickets
	respondTicket = service.RespondTicket
)

// ContactPageHandler 聯絡表單欄位與客服信箱
// @Summary     Contact form
// @Tags        tickets
// @Produce     json
// @Success     200 {object} api.FormResponse
// @Router      /contact [get]
func ContactPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.FormResponse{Fields: []string{"subject", "message"}})
	}
}

// @Summary     Open a support ticket
// @Tags        tickets
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       subject formData string true "主旨"
// @Param       message formData string true "內容"
// @Success     201 {object} model.SupportTicket
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /contact [post]
func CreateTicketHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.TicketRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		t, err := createTicket(c.Request().Context(), db, middleware.CurrentUser(c), req.Subject, req.Message)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, t)
	}
}

// @Summary     List support tickets
// @Tags        admin
// @Produce     json
// @Success     200 {array}  model.SupportTicketDetail
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_tickets [get]
func ListTicketsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		tickets, err := listTickets(c.Request().Context(), db, middleware.CurrentUser(c))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, tickets)
	}
}

// @Summary     Respond to a ticket
// @Description 回覆並關閉工單；已關閉的工單回傳 409
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       ticket_id formData int    true "工單 ID"
// @Param       response  formData string true "回覆內容"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin_tickets [post]
func RespondTicketHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.TicketResponseRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if err := respondTicket(c.Request().Context(), db, middleware.CurrentUser(c), req.TicketID, req.Response); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Response sent successfully!"})
	}
}
