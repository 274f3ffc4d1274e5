package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newMetricsEcho() *echo.Echo {
	e := echo.New()
	e.GET("/metrics", func(c echo.Context) error {
		return c.String(http.StatusOK, "metrics")
	}, MetricsBasicAuth())
	return e
}

func TestMetricsBasicAuth_Disabled(t *testing.T) {
	t.Setenv("METRICS_USER", "")
	t.Setenv("METRICS_PASSWORD", "")

	e := newMetricsEcho()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// 認証設定がなければそのまま通す
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsBasicAuth_Enabled(t *testing.T) {
	t.Setenv("METRICS_USER", "prometheus")
	t.Setenv("METRICS_PASSWORD", "secret")

	e := newMetricsEcho()

	t.Run("正しい認証情報", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.SetBasicAuth("prometheus", "secret")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("誤った認証情報", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.SetBasicAuth("prometheus", "wrong")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("認証情報なし", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMetricsConfig_IsEnabled(t *testing.T) {
	assert.False(t, (&MetricsConfig{}).IsEnabled())
	assert.False(t, (&MetricsConfig{User: "prometheus"}).IsEnabled())
	assert.True(t, (&MetricsConfig{User: "prometheus", Password: "secret"}).IsEnabled())
}
