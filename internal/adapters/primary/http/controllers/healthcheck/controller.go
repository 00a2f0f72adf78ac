package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/metrics"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
	"github.com/gin-gonic/gin"
)

const readyTimeout = 3 * time.Second

type HealthCheckController struct {
	backend service.IBackendService
	log     *slog.Logger
}

func New(backend service.IBackendService, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		backend: backend,
		log:     log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "astro-miniapp",
	})
}

// ready проверяет, что бэкенд мини-приложения отвечает
func (c *HealthCheckController) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	if err := c.backend.Ping(pingCtx); err != nil {
		c.log.Error("backend not ready", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  "backend unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
