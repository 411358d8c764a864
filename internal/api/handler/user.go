package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
)

// UserHandler はユーザー関連のハンドラー
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler はUserHandlerを作成する
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest はプロフィール更新リクエスト
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Image *string `json:"image" validate:"omitempty,url"`
}

// Me はログインユーザーのプロフィールを取得する
// @Summary 自分のプロフィール
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]UserResponse
// @Router /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	u, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": toUserResponse(u, true)})
}

// UpdateMe はログインユーザーのプロフィールを更新する
// @Summary プロフィール更新
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserRequest true "更新内容"
// @Success 200 {object} map[string]UserResponse
// @Router /api/users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.userService.UpdateUser(c.Request().Context(), userID, application.UpdateUserInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": toUserResponse(u, true)})
}

// GetByID はユーザーの公開プロフィールを取得する
// @Summary ユーザー取得
// @Tags users
// @Produce json
// @Param id path string true "ユーザーID"
// @Success 200 {object} map[string]UserResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	u, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": toUserResponse(u, false)})
}
