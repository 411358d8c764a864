package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	t.Run("依存先が無い場合はok", func(t *testing.T) {
		e := NewTestEcho()
		e.GET("/health", NewHealthHandler(nil).Check)

		rec := serve(e, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.NotEmpty(t, resp.Timestamp)
		assert.Empty(t, resp.Checks)
	})

	t.Run("依存先が落ちている場合は503", func(t *testing.T) {
		e := NewTestEcho()
		e.GET("/health", NewHealthHandler(map[string]Pinger{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		}).Check)

		rec := serve(e, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "ok", resp.Checks["database"])
		assert.Equal(t, "unavailable", resp.Checks["redis"])
	})
}
