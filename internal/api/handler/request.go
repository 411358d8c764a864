package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/middleware"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/domain/apperror"
)

var errBadRequest = apperror.Invalid("リクエストの形式が不正です")

// bindAndValidate はリクエストボディを読み込み検証する
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errBadRequest
	}
	return c.Validate(req)
}

// nullableInt は PATCH 用の整数フィールド。未指定と null の明示指定を区別する
type nullableInt struct {
	Set   bool
	Value *int
}

func (n *nullableInt) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// cleared は null が明示的に指定されたかを返す
func (n nullableInt) cleared() bool {
	return n.Set && n.Value == nil
}

// currentUser は認証済みユーザーIDを返す。未認証の場合はエラー
func currentUser(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", middleware.ErrMissingToken
	}
	return id, nil
}

// parseTime は RFC3339 形式の日時を解析する
func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperror.Invalid(field + "の形式が不正です（RFC3339）")
	}
	return t, nil
}

// parseOptionalTime は空でなければ日時を解析する
func parseOptionalTime(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseTime(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Invalid(name + "は整数で指定してください")
	}
	return v, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
