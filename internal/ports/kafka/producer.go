package kafka

import (
	"context"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
)

// IKafkaProducer интерфейс для отправки сообщений в Kafka
type IKafkaProducer interface {
	// SendEvent публикует событие аналитики
	SendEvent(ctx context.Context, event domain.AnalyticsEvent) error
	// Send отправляет произвольное сообщение
	Send(ctx context.Context, key string, value []byte) error
	// Close закрывает producer
	Close() error
}
