package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventNewMessage     EventKind = "NEW_MESSAGE"
	EventBookingUpdated EventKind = "BOOKING_UPDATED"
	EventFeedRefresh    EventKind = "FEED_REFRESH"
)

// Event is the envelope broadcast on broker topics and forwarded
// verbatim to websocket subscribers.
type Event struct {
	Kind           EventKind       `json:"kind"`
	NotificationID uuid.UUID       `json:"notification_id"`
	CommunityID    uuid.UUID       `json:"community_id"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// Encode marshals the event for publishing. Events are small and
// marshal failures indicate a programming error, so the error is
// returned rather than swallowed.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// NotificationTopic is the per-thread topic carrying NEW_MESSAGE and
// BOOKING_UPDATED events.
func NotificationTopic(notificationID uuid.UUID) string {
	return "notification:" + notificationID.String()
}

// CommunityTopic carries feed-level refresh events for a community.
func CommunityTopic(communityID uuid.UUID) string {
	return "community:" + communityID.String()
}
