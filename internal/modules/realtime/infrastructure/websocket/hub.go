package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/realtime/domain"
)

// topicRelay holds the single broker subscription backing one topic and
// the local clients fanned out to from it.
type topicRelay struct {
	sub     domain.Subscription
	members map[*Client]bool
}

// Hub bridges the broker to websocket clients. It keeps exactly one
// broker subscription per topic with at least one local subscriber and
// releases it when the last subscriber leaves. Subscription state lives
// only here; nothing survives a disconnect.
type Hub struct {
	broker domain.Broker
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
	topics  map[string]*topicRelay
}

func NewHub(broker domain.Broker, logger *slog.Logger) *Hub {
	return &Hub{
		broker:  broker,
		logger:  logger,
		clients: make(map[*Client]bool),
		topics:  make(map[string]*topicRelay),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)

	var released []domain.Subscription
	for topic := range c.topics {
		if sub := h.dropMemberLocked(c, topic); sub != nil {
			released = append(released, sub)
		}
	}
	close(c.send)
	h.mu.Unlock()

	for _, sub := range released {
		sub.Close()
	}
}

// Subscribe attaches the client to a topic, opening a broker
// subscription if the client is the first local member.
func (h *Hub) Subscribe(c *Client, topic string) error {
	h.mu.Lock()
	if relay, ok := h.topics[topic]; ok {
		relay.members[c] = true
		c.topics[topic] = true
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	// Broker round trip happens outside the hub lock.
	sub, err := h.broker.Subscribe(context.Background(), topic)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if relay, ok := h.topics[topic]; ok {
		// Another client raced us to the first subscription.
		relay.members[c] = true
		c.topics[topic] = true
		h.mu.Unlock()
		sub.Close()
		return nil
	}
	h.topics[topic] = &topicRelay{
		sub:     sub,
		members: map[*Client]bool{c: true},
	}
	c.topics[topic] = true
	h.mu.Unlock()

	go h.relay(topic, sub)
	return nil
}

// Unsubscribe detaches the client from a topic, closing the broker
// subscription when no local member remains.
func (h *Hub) Unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	sub := h.dropMemberLocked(c, topic)
	h.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}

// dropMemberLocked removes c from the topic and returns the broker
// subscription to close if c was the last member. Caller holds h.mu.
func (h *Hub) dropMemberLocked(c *Client, topic string) domain.Subscription {
	delete(c.topics, topic)
	relay, ok := h.topics[topic]
	if !ok {
		return nil
	}
	delete(relay.members, c)
	if len(relay.members) > 0 {
		return nil
	}
	delete(h.topics, topic)
	return relay.sub
}

// relay pumps broker payloads to the local members of one topic. It
// exits when the subscription is closed.
func (h *Hub) relay(topic string, sub domain.Subscription) {
	for payload := range sub.C() {
		h.mu.RLock()
		relay, ok := h.topics[topic]
		if !ok {
			h.mu.RUnlock()
			continue
		}
		for c := range relay.members {
			select {
			case c.send <- payload:
			default:
				// Client too slow, skip this event.
				h.logger.Warn("dropping event for slow websocket client", "user_id", c.userID, "topic", topic)
			}
		}
		h.mu.RUnlock()
	}
}

// IsSubscribed reports whether any connection of the user is currently
// subscribed to the topic. Push delivery uses this as its gating
// signal: actively watching clients get the websocket event instead.
func (h *Hub) IsSubscribed(userID uuid.UUID, topic string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	relay, ok := h.topics[topic]
	if !ok {
		return false
	}
	for c := range relay.members {
		if c.userID == userID {
			return true
		}
	}
	return false
}

// IsConnected reports whether the user has any live connection.
func (h *Hub) IsConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.userID == userID {
			return true
		}
	}
	return false
}

// Close tears down every connection and broker subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	var released []domain.Subscription
	for topic, relay := range h.topics {
		released = append(released, relay.sub)
		delete(h.topics, topic)
	}
	for c := range h.clients {
		for topic := range c.topics {
			delete(c.topics, topic)
		}
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, sub := range released {
		sub.Close()
	}
}
