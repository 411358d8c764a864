package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/post"
)

// PostHandler は投稿関連のハンドラー
type PostHandler struct {
	postService PostServiceInterface
}

// NewPostHandler はPostHandlerを作成する
func NewPostHandler(postService PostServiceInterface) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest は投稿作成リクエスト
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdatePostRequest は投稿更新リクエスト
type UpdatePostRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// List は投稿一覧を取得する。authorId を指定するとその作者の投稿に絞る
// @Summary 投稿一覧
// @Tags posts
// @Produce json
// @Param authorId query string false "作者ID"
// @Success 200 {object} map[string][]PostResponse
// @Router /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	var (
		posts []*post.Post
		err   error
	)
	if authorID := c.QueryParam("authorId"); authorID != "" {
		posts, err = h.postService.GetUserPosts(c.Request().Context(), authorID)
	} else {
		posts, err = h.postService.GetAllPosts(c.Request().Context())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"posts": toPostResponses(posts)})
}

// GetByID は投稿を取得する
// @Summary 投稿取得
// @Tags posts
// @Produce json
// @Param id path int true "投稿ID"
// @Success 200 {object} map[string]PostResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *PostHandler) GetByID(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	p, err := h.postService.GetPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"post": toPostResponse(p)})
}

// Create は投稿を作成する
// @Summary 投稿作成
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "投稿内容"
// @Success 201 {object} map[string]PostResponse
// @Router /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.postService.CreatePost(c.Request().Context(), userID, application.PostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"post": toPostResponse(p)})
}

// Update は投稿を更新する
// @Summary 投稿更新
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "投稿ID"
// @Param request body UpdatePostRequest true "更新内容"
// @Success 200 {object} map[string]PostResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := postID(c)
	if err != nil {
		return err
	}
	var req UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.postService.UpdatePost(c.Request().Context(), id, userID, application.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"post": toPostResponse(p)})
}

// Delete は投稿を削除する
// @Summary 投稿削除
// @Tags posts
// @Security BearerAuth
// @Param id path int true "投稿ID"
// @Success 204
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := postID(c)
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.Invalid("投稿IDが不正です")
	}
	return id, nil
}
