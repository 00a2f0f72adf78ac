package app

import (
	"fmt"

	server "github.com/admin/tg-bots/astro-miniapp/internal/adapters/primary/http"
	backendAdapter "github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/backend"
	kafkaAdapter "github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/kafka"
	"github.com/admin/tg-bots/astro-miniapp/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/dashboard"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/session"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Log       *logger.Config         `envconfig:"LOG"`
	Server    *server.Config         `envconfig:"APISERVER"`
	Backend   *backendAdapter.Config `envconfig:"BACKEND"`
	Telegram  *telegram.Config       `envconfig:"TELEGRAM"`
	Session   session.Config         `envconfig:"SESSION"`
	Kafka     *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Analytics AnalyticsConfig        `envconfig:"ANALYTICS"`
}

// AnalyticsConfig очередь событий перед публикацией в Kafka
type AnalyticsConfig struct {
	Buffer int `envconfig:"BUFFER" default:"1024"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate ловит ошибки, которые иначе всплыли бы только при первом подключении
func (c *Config) Validate() error {
	if _, err := dashboard.ParseRacePolicy(c.Session.RacePolicy); err != nil {
		return err
	}
	if c.Backend == nil || c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base url is required")
	}
	if c.Kafka.Enabled() && len(c.Kafka.GetBrokers()) == 0 {
		return fmt.Errorf("kafka brokers list is empty")
	}
	return nil
}
