package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lendly/lendly-backend/internal/modules/realtime/domain"
)

// Broker implements domain.Broker on top of Redis pub/sub. Redis
// pub/sub is at-most-once with no persistence, which is exactly the
// delivery contract the fan-out layer promises.
type Broker struct {
	client *redis.Client
}

func NewBroker(client *redis.Client) *Broker {
	return &Broker{client: client}
}

func (b *Broker) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", topic, err)
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, topic string) (domain.Subscription, error) {
	pubsub := b.client.Subscribe(ctx, topic)

	// Receive forces the SUBSCRIBE round trip so a failed subscription
	// surfaces here instead of as a silently empty channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	sub := &subscription{
		pubsub: pubsub,
		ch:     make(chan []byte, 32),
	}
	go sub.pump()

	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	ch     chan []byte
}

func (s *subscription) pump() {
	defer close(s.ch)
	for msg := range s.pubsub.Channel() {
		s.ch <- []byte(msg.Payload)
	}
}

func (s *subscription) C() <-chan []byte {
	return s.ch
}

func (s *subscription) Close() error {
	return s.pubsub.Close()
}
