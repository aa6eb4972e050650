package memory

import (
	"context"
	"sync"

	"github.com/lendly/lendly-backend/internal/modules/realtime/domain"
)

// Broker is an in-process domain.Broker used in tests and single-node
// development. Semantics mirror the Redis implementation: at-most-once,
// no replay, slow subscribers are skipped rather than blocked on.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[*subscription]bool
}

func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[*subscription]bool)}
}

func (b *Broker) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.topics[topic] {
		select {
		case sub.ch <- payload:
		default:
		}
	}
	return nil
}

func (b *Broker) Subscribe(_ context.Context, topic string) (domain.Subscription, error) {
	sub := &subscription{
		broker: b,
		topic:  topic,
		ch:     make(chan []byte, 32),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*subscription]bool)
	}
	b.topics[topic][sub] = true

	return sub, nil
}

// SubscriberCount reports the number of live subscriptions on a topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

type subscription struct {
	broker *Broker
	topic  string
	ch     chan []byte
	once   sync.Once
}

func (s *subscription) C() <-chan []byte {
	return s.ch
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.topics[s.topic], s)
		if len(s.broker.topics[s.topic]) == 0 {
			delete(s.broker.topics, s.topic)
		}
		s.broker.mu.Unlock()
		close(s.ch)
	})
	return nil
}
