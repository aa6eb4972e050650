package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat line inside a notification. Messages are
// append-only and immutable; they live and die with their notification.
type Message struct {
	ID             uuid.UUID `json:"id" db:"id"`
	NotificationID uuid.UUID `json:"notification_id" db:"notification_id"`
	CreatorID      uuid.UUID `json:"creator_id" db:"creator_id"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func NewMessage(notificationID, creatorID uuid.UUID, content string) (*Message, error) {
	if content == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		ID:             uuid.New(),
		NotificationID: notificationID,
		CreatorID:      creatorID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
