package app

import (
	"context"
	"fmt"
	"net"
	"net/http"

	server "github.com/admin/tg-bots/astro-miniapp/internal/adapters/primary/http"
	healthcheckController "github.com/admin/tg-bots/astro-miniapp/internal/adapters/primary/http/controllers/healthcheck"
	miniappController "github.com/admin/tg-bots/astro-miniapp/internal/adapters/primary/http/controllers/miniapp"
	backendAdapter "github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/backend"
	kafkaAdapter "github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/kafka"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
	analyticsService "github.com/admin/tg-bots/astro-miniapp/internal/services/analytics"
	backendService "github.com/admin/tg-bots/astro-miniapp/internal/services/backend"
)

type Dependencies struct {
	HTTPServer *http.Server
	Analytics  *analyticsService.Service
	Producer   *kafkaAdapter.Producer
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	backend := a.initBackend()

	producer, err := a.initKafka()
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka: %w", err)
	}

	// typed nil в интерфейсе не считается выключенной аналитикой
	var analyticsProducer kafka.IKafkaProducer
	if producer != nil {
		analyticsProducer = producer
	}
	analytics := analyticsService.New(analyticsProducer, a.Cfg.Analytics.Buffer, a.Log)

	httpServer := a.initHTTP(ctx, backend, analytics)

	return &Dependencies{
		HTTPServer: httpServer,
		Analytics:  analytics,
		Producer:   producer,
	}, nil
}

func (a *App) initBackend() service.IBackendService {
	client := backendAdapter.NewClient(a.Cfg.Backend, a.Log)
	a.Log.Info("backend client initialized", "base_url", a.Cfg.Backend.BaseURL)
	return backendService.New(client)
}

// initKafka producer нужен только аналитике, без брокеров работаем без неё
func (a *App) initKafka() (*kafkaAdapter.Producer, error) {
	if !a.Cfg.Kafka.Enabled() {
		a.Log.Info("kafka brokers not configured, analytics disabled")
		return nil, nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		return nil, err
	}

	a.Log.Info("kafka producer initialized",
		"brokers", a.Cfg.Kafka.GetBrokers(),
		"topic", a.Cfg.Kafka.Topic,
	)
	return producer, nil
}

func (a *App) initHTTP(ctx context.Context, backend service.IBackendService, analytics service.IAnalyticsService) *http.Server {
	if !a.Cfg.Telegram.ShouldVerify() {
		a.Log.Warn("telegram init data is not verified, any user id is accepted")
	}

	healthCheck := healthcheckController.New(backend, a.Log)
	miniapp := miniappController.New(
		backend,
		telegram.NewValidator(a.Cfg.Telegram),
		analytics,
		a.Cfg.Session,
		a.Log,
	)

	httpServer := server.NewHTTPServer(a.Cfg.Server, a.Log, healthCheck, miniapp)
	// WebSocket-сессии переживают Shutdown, поэтому их контексты наследуют контекст приложения
	httpServer.BaseContext = func(net.Listener) context.Context { return ctx }

	return httpServer
}
