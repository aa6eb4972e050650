package domain

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeChat    Type = "chat"
	TypeBooking Type = "booking"
	TypeRequest Type = "request"
)

// Notification is one entry of the unified activity feed: a chat
// thread, a booking, or a fulfilled request between two participants in
// one community. The type discriminates which of BookingID/PostID is
// set; construction goes through the New*Notification constructors so
// the exactly-one-of invariant cannot be violated piecemeal.
type Notification struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Type        Type       `json:"type" db:"type"`
	CreatorID   uuid.UUID  `json:"creator_id" db:"creator_id"`
	RecipientID uuid.UUID  `json:"recipient_id" db:"recipient_id"`
	CommunityID uuid.UUID  `json:"community_id" db:"community_id"`
	NotifierID  *uuid.UUID `json:"notifier_id,omitempty" db:"notifier_id"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty" db:"booking_id"`
	PostID      *uuid.UUID `json:"post_id,omitempty" db:"post_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// NewChatNotification starts an empty chat thread between creator and
// recipient. The notifier stays unset until the first message lands.
func NewChatNotification(creatorID, recipientID, communityID uuid.UUID) (*Notification, error) {
	return newNotification(TypeChat, creatorID, recipientID, communityID, nil, nil, nil)
}

// NewBookingNotification records a booking addressed to the post owner,
// flagged unread for them by the booker.
func NewBookingNotification(bookerID, ownerID, communityID, bookingID uuid.UUID) (*Notification, error) {
	if bookingID == uuid.Nil {
		return nil, ErrInvalidNotification
	}
	return newNotification(TypeBooking, bookerID, ownerID, communityID, &bookerID, &bookingID, nil)
}

// NewRequestNotification records that creator's post fulfils the
// recipient's open request.
func NewRequestNotification(creatorID, recipientID, communityID, postID uuid.UUID) (*Notification, error) {
	if postID == uuid.Nil {
		return nil, ErrInvalidNotification
	}
	return newNotification(TypeRequest, creatorID, recipientID, communityID, &creatorID, nil, &postID)
}

func newNotification(t Type, creatorID, recipientID, communityID uuid.UUID, notifierID, bookingID, postID *uuid.UUID) (*Notification, error) {
	if creatorID == uuid.Nil || recipientID == uuid.Nil || communityID == uuid.Nil {
		return nil, ErrInvalidNotification
	}
	if creatorID == recipientID {
		return nil, ErrInvalidNotification
	}

	now := time.Now().UTC()
	return &Notification{
		ID:          uuid.New(),
		Type:        t,
		CreatorID:   creatorID,
		RecipientID: recipientID,
		CommunityID: communityID,
		NotifierID:  notifierID,
		BookingID:   bookingID,
		PostID:      postID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Participant reports whether the user is one of the two parties.
func (n *Notification) Participant(userID uuid.UUID) bool {
	return userID == n.CreatorID || userID == n.RecipientID
}

// Other returns the counterpart of the given participant.
func (n *Notification) Other(userID uuid.UUID) uuid.UUID {
	if userID == n.CreatorID {
		return n.RecipientID
	}
	return n.CreatorID
}
