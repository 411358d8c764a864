package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
)

// TicketHandler はチケット関連のハンドラー
type TicketHandler struct {
	ticketService TicketServiceInterface
}

// NewTicketHandler はTicketHandlerを作成する
func NewTicketHandler(ticketService TicketServiceInterface) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicketRequest はチケット作成リクエスト
type CreateTicketRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       int     `json:"price" validate:"min=0"`
	Quantity    *int    `json:"quantity" validate:"omitempty,min=1"`
	SalesStart  *string `json:"salesStart"`
	SalesEnd    *string `json:"salesEnd"`
}

// UpdateTicketRequest はチケット更新リクエスト
type UpdateTicketRequest struct {
	Name        *string     `json:"name" validate:"omitempty,max=100"`
	Description *string     `json:"description"`
	Price       *int        `json:"price" validate:"omitempty,min=0"`
	Quantity    nullableInt `json:"quantity"` // null で無制限に戻す
	SalesStart  *string     `json:"salesStart"`
	SalesEnd    *string     `json:"salesEnd"`
}

// Create はイベントにチケットを追加する
// @Summary チケット作成
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Param request body CreateTicketRequest true "チケット情報"
// @Success 201 {object} map[string]TicketResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/events/{id}/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CreateTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := application.CreateTicketInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if input.SalesStart, err = parseOptionalTime("salesStart", req.SalesStart); err != nil {
		return err
	}
	if input.SalesEnd, err = parseOptionalTime("salesEnd", req.SalesEnd); err != nil {
		return err
	}

	t, err := h.ticketService.CreateTicket(c.Request().Context(), c.Param("id"), input, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"ticket": toTicketResponse(t)})
}

// ListByEvent はイベントのチケット一覧を取得する
// @Summary チケット一覧
// @Tags tickets
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} map[string][]TicketResponse
// @Router /api/events/{id}/tickets [get]
func (h *TicketHandler) ListByEvent(c echo.Context) error {
	tickets, err := h.ticketService.GetEventTickets(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	res := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		res[i] = toTicketResponse(t)
	}
	return c.JSON(http.StatusOK, map[string]any{"tickets": res})
}

// GetByID はチケットを取得する
// @Summary チケット取得
// @Tags tickets
// @Produce json
// @Param id path string true "チケットID"
// @Success 200 {object} map[string]TicketResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/tickets/{id} [get]
func (h *TicketHandler) GetByID(c echo.Context) error {
	t, err := h.ticketService.GetTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ticket": toTicketResponse(t)})
}

// Availability はチケットの購入可否を取得する
// @Summary チケット在庫確認
// @Tags tickets
// @Produce json
// @Param id path string true "チケットID"
// @Success 200 {object} map[string]ticket.Availability
// @Failure 404 {object} api.ErrorResponse
// @Router /api/tickets/{id}/availability [get]
func (h *TicketHandler) Availability(c echo.Context) error {
	a, err := h.ticketService.CheckTicketAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"availability": a})
}

// Update はチケットを更新する
// @Summary チケット更新
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "チケットID"
// @Param request body UpdateTicketRequest true "更新内容"
// @Success 200 {object} map[string]TicketResponse
// @Router /api/tickets/{id} [patch]
func (h *TicketHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req UpdateTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := application.UpdateTicketInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity.Value,
		ClearQuantity: req.Quantity.cleared(),
	}
	if input.SalesStart, err = parseOptionalTime("salesStart", req.SalesStart); err != nil {
		return err
	}
	if input.SalesEnd, err = parseOptionalTime("salesEnd", req.SalesEnd); err != nil {
		return err
	}

	t, err := h.ticketService.UpdateTicket(c.Request().Context(), c.Param("id"), input, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"ticket": toTicketResponse(t)})
}

// Delete はチケットを削除する
// @Summary チケット削除
// @Tags tickets
// @Security BearerAuth
// @Param id path string true "チケットID"
// @Success 204
// @Router /api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.ticketService.DeleteTicket(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
