package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
)

// ReviewHandler はレビュー関連のハンドラー
type ReviewHandler struct {
	reviewService ReviewServiceInterface
}

// NewReviewHandler はReviewHandlerを作成する
func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest はレビュー作成リクエスト
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// UpdateReviewRequest はレビュー更新リクエスト
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// Create は終了したイベントにレビューを投稿する
// @Summary レビュー投稿
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "イベントID"
// @Param request body CreateReviewRequest true "レビュー"
// @Success 201 {object} map[string]ReviewResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /api/events/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.reviewService.CreateReview(c.Request().Context(), c.Param("id"), userID, application.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"review": toReviewResponse(r)})
}

// ListByEvent はイベントのレビュー一覧を取得する
// @Summary イベントのレビュー一覧
// @Tags reviews
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} map[string][]ReviewResponse
// @Router /api/events/{id}/reviews [get]
func (h *ReviewHandler) ListByEvent(c echo.Context) error {
	reviews, err := h.reviewService.GetEventReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"reviews": toReviewResponses(reviews)})
}

// Rating はイベントの平均評価を取得する
// @Summary イベントの平均評価
// @Tags reviews
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} map[string]review.Rating
// @Router /api/events/{id}/rating [get]
func (h *ReviewHandler) Rating(c echo.Context) error {
	rating, err := h.reviewService.GetEventAverageRating(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"rating": rating})
}

// ListMine はログインユーザーのレビュー一覧を取得する
// @Summary 自分のレビュー一覧
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]ReviewResponse
// @Router /api/users/me/reviews [get]
func (h *ReviewHandler) ListMine(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviewService.GetUserReviews(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"reviews": toReviewResponses(reviews)})
}

// Update はレビューを更新する
// @Summary レビュー更新
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "レビューID"
// @Param request body UpdateReviewRequest true "更新内容"
// @Success 200 {object} map[string]ReviewResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/reviews/{id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.reviewService.UpdateReview(c.Request().Context(), c.Param("id"), userID, application.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"review": toReviewResponse(r)})
}

// Delete はレビューを削除する
// @Summary レビュー削除
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "レビューID"
// @Success 204
// @Router /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.reviewService.DeleteReview(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
