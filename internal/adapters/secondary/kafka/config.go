package kafka

import (
	"strings"
)

// Config конфигурация Kafka producer для событий аналитики
type Config struct {
	Brokers          string `envconfig:"BROKERS"`                                 // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"miniapp_analytics_events"` // название топика
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"`                       // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`                          // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// Enabled аналитика включается только при заданных брокерах
func (c *Config) Enabled() bool {
	return c != nil && strings.TrimSpace(c.Brokers) != ""
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	parts := strings.Split(c.Brokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
