package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/admin/tg-bots/astro-miniapp/internal/domain"
	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEvent(t *testing.T) {
	cfg := &Config{Topic: "events"}
	mock := mocks.NewSyncProducer(t, nil)

	var got *sarama.ProducerMessage
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		got = msg
		return nil
	})

	p := NewProducerWith(mock, cfg, logger.NewNop())
	event := domain.AnalyticsEvent{
		UserID:    42,
		SessionID: "s-1",
		EventType: domain.EventTabSwitch,
		Details:   "astro",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, p.SendEvent(context.Background(), event))
	require.NoError(t, p.Close())

	require.NotNil(t, got)
	assert.Equal(t, "events", got.Topic)

	key, err := got.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "s-1", string(key))

	raw, err := got.Value.Encode()
	require.NoError(t, err)
	var decoded domain.AnalyticsEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event, decoded)

	headers := map[string]string{}
	for _, h := range got.Headers {
		headers[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, map[string]string{"event_type": "tab_switch", "user_id": "42"}, headers)
}

func TestSendFailureIsWrapped(t *testing.T) {
	cause := errors.New("broker down")
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(cause)

	p := NewProducerWith(mock, &Config{Topic: "events"}, logger.NewNop())

	err := p.Send(context.Background(), "k", []byte("v"))
	assert.ErrorIs(t, err, cause)
	require.NoError(t, p.Close())
}

func TestConfigBrokers(t *testing.T) {
	assert.False(t, (&Config{}).Enabled())
	assert.False(t, (*Config)(nil).Enabled())

	cfg := &Config{Brokers: "a:9092, b:9092,"}
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.GetBrokers())
}
