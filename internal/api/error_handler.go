package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusOf はエラー種別に対応する HTTP ステータスを返す
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindInvalidInput, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindDuplicate:
		return http.StatusConflict
	case apperror.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// NewHTTPErrorHandler はエラーを JSON レスポンスに変換するハンドラーを返す
// exposeDetails が true の場合は内部エラーの詳細をレスポンスに含める
func NewHTTPErrorHandler(exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code    = http.StatusInternalServerError
			message = "内部サーバーエラー"
			details string
		)

		if appErr, ok := apperror.As(err); ok {
			code = StatusOf(appErr.Kind)
			if appErr.Kind != apperror.KindInternal {
				message = appErr.Message
			} else {
				details = err.Error()
			}
		} else if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else {
			details = err.Error()
		}

		// エラーログを出力（5xx エラーの場合）
		if code >= 500 {
			logger.Error("サーバーエラー",
				zap.Int("status", code),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		resp := ErrorResponse{Error: message, Code: code}
		if exposeDetails {
			resp.Details = details
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, resp)
		}
		if err != nil {
			logger.Error("エラーレスポンス送信失敗", zap.Error(err))
		}
	}
}
