package middlewares

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RecoveryLogger превращает панику обработчика в 500 и пишет её в лог и метрики.
// Паника в задаче цикла сессии сюда не доходит, её гасит сам цикл.
func RecoveryLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic caught",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"full_path", c.FullPath(),
					"client_ip", c.ClientIP(),
					"user_agent", c.Request.UserAgent(),
				)

				// Стек отдельной записью для читаемости
				log.Error("stack trace",
					"stack", string(debug.Stack()),
				)

				route := c.FullPath()
				if route == "" {
					route = "unmatched"
				}
				metrics.PanicRecovered(route)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
