package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

type StartChatRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" validate:"required"`
	CommunityID uuid.UUID `json:"community_id" validate:"required"`
}

type CreateMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type CreateRequestNotificationRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" validate:"required"`
	CommunityID uuid.UUID `json:"community_id" validate:"required"`
	PostID      uuid.UUID `json:"post_id" validate:"required"`
}

// NotificationResponse is the feed entry as clients see it. Unread is
// derived per viewer: the flag is up when someone else last acted on
// the thread.
type NotificationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	CommunityID uuid.UUID  `json:"community_id"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty"`
	PostID      *uuid.UUID `json:"post_id,omitempty"`
	Unread      bool       `json:"unread"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	NotificationID uuid.UUID `json:"notification_id"`
	CreatorID      uuid.UUID `json:"creator_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type PageMetadata struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

func ToNotificationResponse(n *domain.Notification, viewerID uuid.UUID) *NotificationResponse {
	return &NotificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		CreatorID:   n.CreatorID,
		RecipientID: n.RecipientID,
		CommunityID: n.CommunityID,
		BookingID:   n.BookingID,
		PostID:      n.PostID,
		Unread:      n.NotifierID != nil && *n.NotifierID != viewerID,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func ToMessageResponse(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		NotificationID: m.NotificationID,
		CreatorID:      m.CreatorID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
