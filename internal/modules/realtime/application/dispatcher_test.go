package application

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingdomain "github.com/lendly/lendly-backend/internal/modules/booking/domain"
	notifdomain "github.com/lendly/lendly-backend/internal/modules/notification/domain"
	pushdomain "github.com/lendly/lendly-backend/internal/modules/push/domain"
	"github.com/lendly/lendly-backend/internal/modules/realtime/domain"
	"github.com/lendly/lendly-backend/internal/modules/realtime/infrastructure/memory"
)

type presenceStub struct {
	watching map[string]uuid.UUID
}

func (p presenceStub) IsSubscribed(userID uuid.UUID, topic string) bool {
	return p.watching[topic] == userID
}

type enqueuerStub struct {
	calls chan pushdomain.Payload
}

func newEnqueuerStub() *enqueuerStub {
	return &enqueuerStub{calls: make(chan pushdomain.Payload, 8)}
}

func (e *enqueuerStub) Enqueue(_ context.Context, _ uuid.UUID, payload pushdomain.Payload) error {
	e.calls <- payload
	return nil
}

func testDispatcher(presence Presence, push PushEnqueuer) (*Dispatcher, *memory.Broker) {
	broker := memory.NewBroker()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(broker, presence, push, logger), broker
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestDispatcher_MessageCreated(t *testing.T) {
	author := uuid.New()
	recipient := uuid.New()
	thread, err := notifdomain.NewChatNotification(author, recipient, uuid.New())
	require.NoError(t, err)
	msg, err := notifdomain.NewMessage(thread.ID, author, "hello there")
	require.NoError(t, err)

	t.Run("publishes to the thread topic and pushes to the absent recipient", func(t *testing.T) {
		push := newEnqueuerStub()
		d, broker := testDispatcher(presenceStub{}, push)

		sub, err := broker.Subscribe(context.Background(), domain.NotificationTopic(thread.ID))
		require.NoError(t, err)
		defer sub.Close()
		feedSub, err := broker.Subscribe(context.Background(), domain.CommunityTopic(thread.CommunityID))
		require.NoError(t, err)
		defer feedSub.Close()

		d.MessageCreated(thread, msg)

		raw := waitFor(t, sub.C(), "thread event")
		var event domain.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, domain.EventNewMessage, event.Kind)
		assert.Equal(t, thread.ID, event.NotificationID)

		rawFeed := waitFor(t, feedSub.C(), "feed refresh")
		require.NoError(t, json.Unmarshal(rawFeed, &event))
		assert.Equal(t, domain.EventFeedRefresh, event.Kind)

		payload := waitFor(t, push.calls, "push enqueue")
		assert.Equal(t, "New message", payload.Title)
		assert.Equal(t, "hello there", payload.Body)
		assert.Equal(t, thread.ID.String(), payload.Data["notification_id"])
	})

	t.Run("watching recipients get no push", func(t *testing.T) {
		push := newEnqueuerStub()
		presence := presenceStub{
			watching: map[string]uuid.UUID{domain.NotificationTopic(thread.ID): recipient},
		}
		d, broker := testDispatcher(presence, push)

		sub, err := broker.Subscribe(context.Background(), domain.NotificationTopic(thread.ID))
		require.NoError(t, err)
		defer sub.Close()

		d.MessageCreated(thread, msg)
		waitFor(t, sub.C(), "thread event")

		select {
		case <-push.calls:
			t.Fatal("push must be suppressed while the recipient is watching")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestDispatcher_BookingUpdated(t *testing.T) {
	booker := uuid.New()
	owner := uuid.New()
	community := uuid.New()

	b, err := bookingdomain.NewBooking(booker, uuid.New(), community, bookingdomain.TimeFrameASAP, nil, nil)
	require.NoError(t, err)
	b.Status = bookingdomain.StatusAccepted
	n, err := notifdomain.NewBookingNotification(booker, owner, community, b.ID)
	require.NoError(t, err)

	push := newEnqueuerStub()
	d, broker := testDispatcher(presenceStub{}, push)

	sub, err := broker.Subscribe(context.Background(), domain.NotificationTopic(n.ID))
	require.NoError(t, err)
	defer sub.Close()

	d.BookingUpdated(n, b)

	raw := waitFor(t, sub.C(), "booking event")
	var event domain.Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, domain.EventBookingUpdated, event.Kind)

	// The push goes to the booker, who asked and is waiting for the
	// answer.
	payload := waitFor(t, push.calls, "push enqueue")
	assert.Equal(t, "Booking accepted", payload.Title)
}

func TestDispatcher_NotificationCreated(t *testing.T) {
	creator := uuid.New()
	recipient := uuid.New()
	community := uuid.New()
	n, err := notifdomain.NewRequestNotification(creator, recipient, community, uuid.New())
	require.NoError(t, err)

	push := newEnqueuerStub()
	d, broker := testDispatcher(presenceStub{}, push)

	feedSub, err := broker.Subscribe(context.Background(), domain.CommunityTopic(community))
	require.NoError(t, err)
	defer feedSub.Close()

	d.NotificationCreated(n)

	raw := waitFor(t, feedSub.C(), "feed refresh")
	var event domain.Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, domain.EventFeedRefresh, event.Kind)

	payload := waitFor(t, push.calls, "push enqueue")
	assert.Equal(t, "New request", payload.Title)
}
