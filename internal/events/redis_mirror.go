package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// RedisMirror republishes bus events onto redis pub/sub channels so
// other service instances can observe them. Channel name is
// "events:<topic>". Publish failures are logged and dropped; the local
// bus stays authoritative.
type RedisMirror struct {
	client *redis.Client
	logger *zap.Logger
	unsubs []func()
}

// NewRedisMirror creates a mirror; Attach wires it to a bus
func NewRedisMirror(client *redis.Client, logger *zap.Logger) *RedisMirror {
	return &RedisMirror{client: client, logger: logger}
}

// Attach subscribes the mirror to every mirrored topic on the bus
func (m *RedisMirror) Attach(bus *Bus) {
	topics := []Topic{
		TopicTaskChanged,
		TopicActivityChanged,
		TopicUserChanged,
		TopicNotificationCreated,
	}
	for _, topic := range topics {
		m.unsubs = append(m.unsubs, bus.Subscribe(topic, m.forward))
	}
}

// Detach removes the mirror's subscriptions
func (m *RedisMirror) Detach() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}

func (m *RedisMirror) forward(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		m.logger.Warn("failed to marshal event for redis",
			zap.String("topic", string(event.Topic())),
			zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	channel := "events:" + string(event.Topic())
	if err := m.client.Publish(ctx, channel, payload).Err(); err != nil {
		m.logger.Warn("failed to mirror event to redis",
			zap.String("channel", channel),
			zap.Error(err))
	}
}
