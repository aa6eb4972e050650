package domain

import (
	"context"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	// Insert persists a new notification. A chat insert colliding with
	// the per-pair unique index fails with ErrDuplicateChat.
	Insert(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Notification, error)
	// FindChat looks up the chat thread for a participant pair in a
	// community, in either orientation.
	FindChat(ctx context.Context, communityID, userA, userB uuid.UUID) (*Notification, error)
	// SetNotifier flags the notification unread on behalf of notifierID
	// and bumps updated_at.
	SetNotifier(ctx context.Context, id, notifierID uuid.UUID) error
	// ClearNotifier clears the unread flag only when it is held by
	// someone other than the viewer; otherwise it leaves the row alone.
	ClearNotifier(ctx context.Context, id, viewerID uuid.UUID) error
	// ListForCommunity returns the viewer's notifications in a
	// community, most recently updated first, plus the total count.
	ListForCommunity(ctx context.Context, communityID, viewerID uuid.UUID, offset, limit int) ([]Notification, int, error)
}

type MessageRepository interface {
	// Append inserts the message and, in the same transaction, marks
	// its notification updated with the author as notifier.
	Append(ctx context.Context, msg *Message) error
	// List returns messages in (created_at, id) ascending order sliced
	// by offset/limit, plus the total count.
	List(ctx context.Context, notificationID uuid.UUID, offset, limit int) ([]Message, int, error)
	// ListAfter returns up to limit messages strictly after the cursor
	// message in (created_at, id) order. ErrUnknownCursor when the
	// cursor message does not exist.
	ListAfter(ctx context.Context, notificationID, afterMessageID uuid.UUID, limit int) ([]Message, error)
}
