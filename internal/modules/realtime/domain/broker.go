package domain

import "context"

// Subscription is a live feed of payloads published on one topic.
// Delivery is at-most-once: payloads published while nobody listens are
// gone, and nothing is replayed after Close.
type Subscription interface {
	// C yields published payloads until the subscription is closed.
	C() <-chan []byte
	Close() error
}

// Broker is the pub/sub collaborator used for real-time fan-out.
// Implementations must not retain payloads; readers that are not
// subscribed at publish time simply miss the event.
type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (Subscription, error)
}
