package analytics

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/kafka"
	"github.com/admin/tg-bots/astro-miniapp/internal/ports/service"
)

const defaultBuffer = 256

// Service реализует IAnalyticsService: события копятся в буфере и публикуются
// фоновым воркером, Track никогда не блокирует цикл событий сессии.
type Service struct {
	producer kafka.IKafkaProducer
	events   chan domain.AnalyticsEvent
	dropped  atomic.Int64
	log      *slog.Logger
}

var _ service.IAnalyticsService = (*Service)(nil)

// New создаёт сервис аналитики. producer == nil - аналитика выключена, Track ничего не делает.
func New(producer kafka.IKafkaProducer, buffer int, log *slog.Logger) *Service {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Service{
		producer: producer,
		events:   make(chan domain.AnalyticsEvent, buffer),
		log:      log,
	}
}

// Track ставит событие в очередь, при переполнении событие теряется
func (s *Service) Track(event domain.AnalyticsEvent) {
	if s == nil || s.producer == nil {
		return
	}

	select {
	case s.events <- event:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			s.log.Warn("analytics buffer full, events dropped", "dropped_total", n)
		}
	}
}

// Dropped сколько событий потеряно из-за переполнения
func (s *Service) Dropped() int64 {
	return s.dropped.Load()
}

// Run публикует события до отмены ctx, затем дописывает то, что осталось в буфере
func (s *Service) Run(ctx context.Context) error {
	if s.producer == nil {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			s.flush(context.WithoutCancel(ctx))
			return nil
		case event := <-s.events:
			s.publish(ctx, event)
		}
	}
}

func (s *Service) flush(ctx context.Context) {
	for {
		select {
		case event := <-s.events:
			s.publish(ctx, event)
		default:
			return
		}
	}
}

func (s *Service) publish(ctx context.Context, event domain.AnalyticsEvent) {
	if err := s.producer.SendEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish analytics event",
			"event_type", event.EventType,
			"session_id", event.SessionID,
			"error", err,
		)
	}
}
