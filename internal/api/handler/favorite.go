package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/middleware"
)

// FavoriteHandler はお気に入り関連のハンドラー
type FavoriteHandler struct {
	favoriteService FavoriteServiceInterface
}

// NewFavoriteHandler はFavoriteHandlerを作成する
func NewFavoriteHandler(favoriteService FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add はイベントをお気に入りに登録する
// @Summary お気に入り登録
// @Tags favorites
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} api.ErrorResponse
// @Router /api/events/{id}/favorite [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.favoriteService.AddToFavorites(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]bool{"favorited": true})
}

// Remove はお気に入りを解除する
// @Summary お気に入り解除
// @Tags favorites
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} api.ErrorResponse
// @Router /api/events/{id}/favorite [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.favoriteService.RemoveFromFavorites(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": false})
}

// Toggle はお気に入りの登録状態を切り替える
// @Summary お気に入り切替
// @Tags favorites
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Success 200 {object} map[string]bool
// @Router /api/events/{id}/toggle-favorite [post]
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	favorited, err := h.favoriteService.ToggleFavorite(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": favorited})
}

// IsFavorited はお気に入り登録済みかを返す。未ログインの場合は false
// @Summary お気に入り状態
// @Tags favorites
// @Param id path string true "イベントID"
// @Success 200 {object} map[string]bool
// @Router /api/events/{id}/is-favorited [get]
func (h *FavoriteHandler) IsFavorited(c echo.Context) error {
	favorited, err := h.favoriteService.IsFavorited(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorited": favorited})
}

// ListMine はログインユーザーのお気に入りイベント一覧を取得する
// @Summary お気に入り一覧
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]EventResponse
// @Router /api/users/me/favorites [get]
func (h *FavoriteHandler) ListMine(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	events, err := h.favoriteService.GetUserFavorites(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"events": toEventResponses(events)})
}
