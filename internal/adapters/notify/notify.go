// Package notify publishes game notifications on an in-process message bus.
// Transport adapters (the Discord bot, the OBS overlay server) subscribe to
// carry them to users; the core never waits on delivery.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics carrying game notifications.
const (
	TopicCardIssued     = "bingo.card.issued"
	TopicEventConfirmed = "bingo.event.confirmed"
	TopicBingoAchieved  = "bingo.achieved"
	TopicWinSubmitted   = "bingo.win.submitted"
	TopicWinConfirmed   = "bingo.win.confirmed"
)

// Notifier publishes JSON payloads to a topic.
type Notifier interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Bus is a watermill gochannel pub/sub. Publish never blocks on slow
// subscribers beyond the configured buffer.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates an in-process notification bus.
func NewBus(opts ...Option) *Bus {
	cfg := busConfig{bufferSize: 64}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: int64(cfg.bufferSize)},
			watermill.NopLogger{},
		),
	}
}

// Publish marshals payload to JSON and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w: %v", ErrPublish, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w: %v", topic, ErrPublish, err)
	}
	return nil
}

// Subscribe returns a channel of messages for topic. Used by transport
// adapters and tests.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w: %v", topic, ErrSubscribe, err)
	}
	return ch, nil
}

// Close shuts down the bus and closes subscriber channels.
func (b *Bus) Close() error {
	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("close bus: %w", err)
	}
	return nil
}

type busConfig struct {
	bufferSize int
}

// Option applies a configuration option to the Bus.
type Option func(*busConfig)

// WithBufferSize sets the per-subscriber output buffer.
func WithBufferSize(n int) Option {
	return func(c *busConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}
