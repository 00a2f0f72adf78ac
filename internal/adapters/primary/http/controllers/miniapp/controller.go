package miniapp

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

//go:embed static/index.html
var indexHTML []byte

// Controller отдаёт оболочку мини-приложения и держит сессии по WebSocket
type Controller struct {
	Backend   service.IBackendService
	Validator *telegram.Validator
	Analytics service.IAnalyticsService
	Cfg       session.Config
	Log       *slog.Logger

	upgrader websocket.Upgrader
}

func New(
	backend service.IBackendService,
	validator *telegram.Validator,
	analytics service.IAnalyticsService,
	cfg session.Config,
	log *slog.Logger,
) *Controller {
	return &Controller{
		Backend:   backend,
		Validator: validator,
		Analytics: analytics,
		Cfg:       cfg,
		Log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origin у WebView Telegram меняется от клиента к клиенту, доверие строится на initData
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/", c.index)
	router.GET("/ws", c.connect)
}

func (c *Controller) index(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (c *Controller) connect(ctx *gin.Context) {
	data, err := c.Validator.Parse(ctx.Query("init_data"))
	if err != nil {
		c.Log.Warn("init data rejected",
			"error", err,
			"client_ip", ctx.ClientIP(),
		)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid init data"})
		return
	}

	identity := domain.IdentityFromTelegram(data.User)

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// ответ клиенту Upgrade уже записал
		c.Log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := c.serve(ctx.Request.Context(), conn, identity); err != nil {
		c.Log.Warn("session ended with error",
			"user_id", identity.UserID,
			"error", err,
		)
	}
}
