package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/middleware"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(false)
	return e
}

// WithTestUser はテスト用に認証済みユーザーIDをコンテキストへ設定する
func WithTestUser(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != "" {
				c.Set(middleware.ContextKeyUserID, userID)
			}
			return next(c)
		}
	}
}
