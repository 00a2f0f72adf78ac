package middlewares

import (
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics считает запросы по шаблону маршрута, а не по сырому пути
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status())
	}
}
