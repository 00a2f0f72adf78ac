package middlewares

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLoggerTurnsPanicInto500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RecoveryLogger(log))
	router.GET("/boom", func(c *gin.Context) {
		panic("section renderer exploded")
	})
	router.GET("/fine", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	logged := buf.String()
	assert.Contains(t, logged, "panic caught")
	assert.Contains(t, logged, "section renderer exploded")
	assert.Contains(t, logged, `"full_path":"/boom"`)
	assert.Contains(t, logged, "stack trace")

	// сервер продолжает обслуживать запросы
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fine", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `astro_miniapp_http_panics_recovered_total{path="/boom"} 1`)
	assert.NotContains(t, scrape.Body.String(), `astro_miniapp_http_panics_recovered_total{path="/fine"}`)
}
