package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	bookingdomain "github.com/lendly/lendly-backend/internal/modules/booking/domain"
	notifdomain "github.com/lendly/lendly-backend/internal/modules/notification/domain"
	pushdomain "github.com/lendly/lendly-backend/internal/modules/push/domain"
	"github.com/lendly/lendly-backend/internal/modules/realtime/domain"
)

const dispatchTimeout = 10 * time.Second

// Presence answers whether a user is actively watching a topic right
// now. Watching clients get the websocket event; everyone else gets a
// push.
type Presence interface {
	IsSubscribed(userID uuid.UUID, topic string) bool
}

// PushEnqueuer schedules a best-effort push delivery.
type PushEnqueuer interface {
	Enqueue(ctx context.Context, recipientID uuid.UUID, payload pushdomain.Payload) error
}

// Dispatcher fans committed writes out to live subscribers and, for
// recipients who are not watching, to their devices. Every entry point
// detaches from the caller immediately: the database write has already
// committed and must not be failed or delayed by notification work, and
// a cancelled request must not cancel the fan-out.
type Dispatcher struct {
	broker   domain.Broker
	presence Presence
	push     PushEnqueuer
	logger   *slog.Logger
}

func NewDispatcher(broker domain.Broker, presence Presence, push PushEnqueuer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		broker:   broker,
		presence: presence,
		push:     push,
		logger:   logger,
	}
}

// MessageCreated announces a freshly appended chat message.
func (d *Dispatcher) MessageCreated(n *notifdomain.Notification, msg *notifdomain.Message) {
	recipient := n.Other(msg.CreatorID)

	go d.run(func(ctx context.Context) {
		body, err := json.Marshal(msg)
		if err != nil {
			d.logger.Error("failed to encode message event", "error", err)
			return
		}

		d.publish(ctx, domain.NotificationTopic(n.ID), domain.Event{
			Kind:           domain.EventNewMessage,
			NotificationID: n.ID,
			CommunityID:    n.CommunityID,
			Payload:        body,
		})
		d.refreshFeed(ctx, n)

		d.pushUnlessWatching(ctx, recipient, n, pushdomain.Payload{
			Title: "New message",
			Body:  preview(msg.Content),
			Data:  deepLink(n),
		})
	})
}

// NotificationCreated announces a new booking or request notification
// to its recipient.
func (d *Dispatcher) NotificationCreated(n *notifdomain.Notification) {
	recipient := n.RecipientID

	go d.run(func(ctx context.Context) {
		d.refreshFeed(ctx, n)

		title := "New request"
		if n.Type == notifdomain.TypeBooking {
			title = "New booking request"
		}
		d.pushUnlessWatching(ctx, recipient, n, pushdomain.Payload{
			Title: title,
			Body:  "Someone in your community needs your attention",
			Data:  deepLink(n),
		})
	})
}

// BookingUpdated announces a booking resolution to the booker.
func (d *Dispatcher) BookingUpdated(n *notifdomain.Notification, b *bookingdomain.Booking) {
	go d.run(func(ctx context.Context) {
		body, err := json.Marshal(b)
		if err != nil {
			d.logger.Error("failed to encode booking event", "error", err)
			return
		}

		d.publish(ctx, domain.NotificationTopic(n.ID), domain.Event{
			Kind:           domain.EventBookingUpdated,
			NotificationID: n.ID,
			CommunityID:    n.CommunityID,
			Payload:        body,
		})
		d.refreshFeed(ctx, n)

		d.pushUnlessWatching(ctx, b.BookerID, n, pushdomain.Payload{
			Title: "Booking " + string(b.Status),
			Body:  "Your booking request was " + string(b.Status),
			Data:  deepLink(n),
		})
	})
}

func (d *Dispatcher) run(fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	fn(ctx)
}

func (d *Dispatcher) publish(ctx context.Context, topic string, event domain.Event) {
	payload, err := event.Encode()
	if err != nil {
		d.logger.Error("failed to encode event", "kind", event.Kind, "error", err)
		return
	}
	if err := d.broker.Publish(ctx, topic, payload); err != nil {
		d.logger.Error("fan-out publish failed", "topic", topic, "error", err)
	}
}

func (d *Dispatcher) refreshFeed(ctx context.Context, n *notifdomain.Notification) {
	d.publish(ctx, domain.CommunityTopic(n.CommunityID), domain.Event{
		Kind:           domain.EventFeedRefresh,
		NotificationID: n.ID,
		CommunityID:    n.CommunityID,
	})
}

func (d *Dispatcher) pushUnlessWatching(ctx context.Context, recipientID uuid.UUID, n *notifdomain.Notification, payload pushdomain.Payload) {
	if d.presence.IsSubscribed(recipientID, domain.NotificationTopic(n.ID)) {
		return
	}
	if err := d.push.Enqueue(ctx, recipientID, payload); err != nil {
		d.logger.Error("failed to enqueue push", "recipient_id", recipientID, "error", err)
	}
}

func deepLink(n *notifdomain.Notification) map[string]string {
	return map[string]string{
		"notification_id": n.ID.String(),
		"type":            string(n.Type),
	}
}

func preview(content string) string {
	const max = 120
	if len(content) <= max {
		return content
	}
	return content[:max] + "…"
}
