package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
)

// RegistrationHandler は参加登録関連のハンドラー
type RegistrationHandler struct {
	registrationService RegistrationServiceInterface
}

// NewRegistrationHandler はRegistrationHandlerを作成する
func NewRegistrationHandler(registrationService RegistrationServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// RegisterRequest は参加登録リクエスト
type RegisterRequest struct {
	TicketID        string `json:"ticketId" validate:"omitempty,uuid"`
	AttendeeCount   int    `json:"attendeeCount" validate:"omitempty,min=1,max=100"`
	AttendeeName    string `json:"attendeeName" validate:"max=200"`
	AttendeeEmail   string `json:"attendeeEmail" validate:"omitempty,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"max=50"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

// CheckInByQRRequest はQRコードによるチェックインリクエスト
type CheckInByQRRequest struct {
	QRCode string `json:"qrCode" validate:"required"`
}

// CheckInResponse はQRコードチェックインのレスポンス
type CheckInResponse struct {
	Success          bool                 `json:"success"`
	AlreadyCheckedIn bool                 `json:"alreadyCheckedIn"`
	Message          string               `json:"message"`
	Registration     RegistrationResponse `json:"registration"`
}

// Register はイベントに参加登録する
// @Summary 参加登録
// @Description 定員とチケット在庫を確認し、参加登録を作成する
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Param request body RegisterRequest true "参加登録情報"
// @Success 201 {object} map[string]RegistrationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /api/events/{id}/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.registrationService.RegisterForEvent(c.Request().Context(), c.Param("id"), userID, application.RegisterInput{
		TicketID:        req.TicketID,
		AttendeeCount:   req.AttendeeCount,
		AttendeeName:    req.AttendeeName,
		AttendeeEmail:   req.AttendeeEmail,
		PhoneNumber:     req.PhoneNumber,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"registration": toRegistrationResponse(reg)})
}

// GetByID は参加登録を取得する
// @Summary 参加登録取得
// @Tags registrations
// @Produce json
// @Param id path string true "参加登録ID"
// @Success 200 {object} map[string]RegistrationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/registrations/{id} [get]
func (h *RegistrationHandler) GetByID(c echo.Context) error {
	reg, err := h.registrationService.GetRegistration(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"registration": toRegistrationResponse(reg)})
}

// ListMine はログインユーザーの参加登録一覧を取得する
// @Summary 自分の参加登録一覧
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]RegistrationResponse
// @Router /api/registrations [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	regs, err := h.registrationService.GetUserRegistrations(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"registrations": toRegistrationResponses(regs)})
}

// ListByEvent はイベントの参加登録一覧を取得する（主催者のみ）
// @Summary イベントの参加者一覧
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 200 {object} map[string][]RegistrationResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/events/{id}/registrations [get]
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	regs, err := h.registrationService.GetEventRegistrations(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"registrations": toRegistrationResponses(regs)})
}

// Cancel は参加登録をキャンセルする
// @Summary 参加登録キャンセル
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "参加登録ID"
// @Success 200 {object} map[string]RegistrationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/registrations/{id}/cancel [patch]
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	reg, err := h.registrationService.CancelRegistration(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"registration": toRegistrationResponse(reg)})
}

// CheckIn は参加者をチェックインする（主催者のみ）
// @Summary チェックイン
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "参加登録ID"
// @Success 200 {object} map[string]RegistrationResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /api/registrations/{id}/checkin [post]
func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	reg, err := h.registrationService.CheckInAttendee(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"registration": toRegistrationResponse(reg)})
}

// CheckInByQR はQRコードで参加者をチェックインする。チェックイン済みでも成功扱い
// @Summary QRコードチェックイン
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckInByQRRequest true "QRコード"
// @Success 200 {object} CheckInResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/registrations/checkin-qr [post]
func (h *RegistrationHandler) CheckInByQR(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CheckInByQRRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := h.registrationService.CheckInByQRCode(c.Request().Context(), req.QRCode, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CheckInResponse{
		Success:          result.Success,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
		Message:          result.Message,
		Registration:     toRegistrationResponse(result.Registration),
	})
}
