package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/event"
)

// EventHandler はイベント関連のハンドラー
type EventHandler struct {
	eventService EventServiceInterface
}

// NewEventHandler はEventHandlerを作成する
func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest はイベント作成リクエスト
type CreateEventRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription" validate:"max=500"`
	StartDate        string   `json:"startDate" validate:"required"`
	EndDate          string   `json:"endDate" validate:"required"`
	Timezone         string   `json:"timezone"`
	LocationType     string   `json:"locationType" validate:"omitempty,oneof=PHYSICAL VIRTUAL HYBRID"`
	Venue            string   `json:"venue"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country"`
	PostalCode       string   `json:"postalCode"`
	VirtualLink      string   `json:"virtualLink" validate:"omitempty,url"`
	Category         string   `json:"category" validate:"required"`
	Tags             []string `json:"tags"`
	Capacity         *int     `json:"capacity" validate:"omitempty,min=1"`
	CoverImage       string   `json:"coverImage"`
	Images           []string `json:"images"`
	Status           string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
	Visibility       string   `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE UNLISTED"`
}

// UpdateEventRequest はイベント更新リクエスト。省略した項目は変更しない
type UpdateEventRequest struct {
	Title            *string     `json:"title" validate:"omitempty,max=200"`
	Description      *string     `json:"description"`
	ShortDescription *string     `json:"shortDescription" validate:"omitempty,max=500"`
	StartDate        *string     `json:"startDate"`
	EndDate          *string     `json:"endDate"`
	Timezone         *string     `json:"timezone"`
	LocationType     *string     `json:"locationType" validate:"omitempty,oneof=PHYSICAL VIRTUAL HYBRID"`
	Venue            *string     `json:"venue"`
	Address          *string     `json:"address"`
	City             *string     `json:"city"`
	State            *string     `json:"state"`
	Country          *string     `json:"country"`
	PostalCode       *string     `json:"postalCode"`
	VirtualLink      *string     `json:"virtualLink"`
	Category         *string     `json:"category"`
	Tags             []string    `json:"tags"`
	Capacity         nullableInt `json:"capacity"` // null で定員なしに戻す
	CoverImage       *string     `json:"coverImage"`
	Images           []string    `json:"images"`
	Status           *string     `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
	Visibility       *string     `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE UNLISTED"`
}

// EventListResponse はイベント一覧のレスポンス
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// Create はイベントを作成する
// @Summary イベント作成
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} map[string]EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	startDate, err := parseTime("startDate", req.StartDate)
	if err != nil {
		return err
	}
	endDate, err := parseTime("endDate", req.EndDate)
	if err != nil {
		return err
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), application.CreateEventInput{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		StartDate:        startDate,
		EndDate:          endDate,
		Timezone:         req.Timezone,
		LocationType:     event.LocationType(req.LocationType),
		Venue:            req.Venue,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		PostalCode:       req.PostalCode,
		VirtualLink:      req.VirtualLink,
		Category:         event.Category(req.Category),
		Tags:             req.Tags,
		Capacity:         req.Capacity,
		CoverImage:       req.CoverImage,
		Images:           req.Images,
		Status:           event.Status(req.Status),
		Visibility:       event.Visibility(req.Visibility),
	}, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"event": toEventResponse(e)})
}

// GetByID はイベントを取得する
// @Summary イベント取得
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} map[string]EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	e, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"event": toEventResponse(e)})
}

// GetBySlug はスラッグからイベントを取得する
// @Summary スラッグでイベント取得
// @Tags events
// @Produce json
// @Param slug path string true "スラッグ"
// @Success 200 {object} map[string]EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/events/slug/{slug} [get]
func (h *EventHandler) GetBySlug(c echo.Context) error {
	e, err := h.eventService.GetEventBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"event": toEventResponse(e)})
}

// List はイベント一覧を取得する
// @Summary イベント一覧
// @Tags events
// @Produce json
// @Param category query string false "カテゴリ"
// @Param status query string false "ステータス"
// @Param search query string false "検索語"
// @Param limit query int false "取得件数"
// @Param offset query int false "オフセット"
// @Success 200 {object} EventListResponse
// @Router /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	filter := event.Filter{
		Category:    event.Category(c.QueryParam("category")),
		Status:      event.Status(c.QueryParam("status")),
		Visibility:  event.Visibility(c.QueryParam("visibility")),
		City:        c.QueryParam("city"),
		Country:     c.QueryParam("country"),
		OrganizerID: c.QueryParam("organizerId"),
		Search:      c.QueryParam("search"),
	}

	var err error
	if filter.StartDate, err = parseOptionalQueryTime(c, "startDate"); err != nil {
		return err
	}
	if filter.EndDate, err = parseOptionalQueryTime(c, "endDate"); err != nil {
		return err
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return err
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return err
	}

	list, err := h.eventService.GetAllEvents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EventListResponse{
		Events: toEventResponses(list.Events),
		Total:  list.Total,
		Limit:  list.Limit,
		Offset: list.Offset,
	})
}

// Update はイベントを更新する
// @Summary イベント更新
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Param request body UpdateEventRequest true "更新内容"
// @Success 200 {object} map[string]EventResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req UpdateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := application.UpdateEventInput{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Timezone:         req.Timezone,
		Venue:            req.Venue,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		PostalCode:       req.PostalCode,
		VirtualLink:      req.VirtualLink,
		Tags:             req.Tags,
		Capacity:         req.Capacity.Value,
		ClearCapacity:    req.Capacity.cleared(),
		CoverImage:       req.CoverImage,
		Images:           req.Images,
	}
	if input.StartDate, err = parseOptionalTime("startDate", req.StartDate); err != nil {
		return err
	}
	if input.EndDate, err = parseOptionalTime("endDate", req.EndDate); err != nil {
		return err
	}
	if req.LocationType != nil {
		v := event.LocationType(*req.LocationType)
		input.LocationType = &v
	}
	if req.Category != nil {
		v := event.Category(*req.Category)
		input.Category = &v
	}
	if req.Status != nil {
		v := event.Status(*req.Status)
		input.Status = &v
	}
	if req.Visibility != nil {
		v := event.Visibility(*req.Visibility)
		input.Visibility = &v
	}

	e, err := h.eventService.UpdateEvent(c.Request().Context(), c.Param("id"), input, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"event": toEventResponse(e)})
}

// Delete はイベントを削除する
// @Summary イベント削除
// @Tags events
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 204
// @Failure 403 {object} api.ErrorResponse
// @Router /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.eventService.DeleteEvent(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats はイベントの集計値を取得する
// @Summary イベント集計
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 200 {object} map[string]event.Stats
// @Failure 403 {object} api.ErrorResponse
// @Router /api/events/{id}/stats [get]
func (h *EventHandler) Stats(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.eventService.GetEventStats(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"stats": stats})
}

func parseOptionalQueryTime(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	return parseOptionalTime(name, &raw)
}
