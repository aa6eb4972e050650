package domain

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDeclined
}

type TimeFrame string

const (
	TimeFrameASAP     TimeFrame = "asap"
	TimeFrameRandom   TimeFrame = "random"
	TimeFrameSpecific TimeFrame = "specific"
)

// Booking is a request to borrow a posted item. It starts pending and
// is resolved exactly once by the post owner; accepted and declined are
// terminal. Bookings are never deleted, they are the durable record of
// who asked for what.
type Booking struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PostID      uuid.UUID  `json:"post_id" db:"post_id"`
	BookerID    uuid.UUID  `json:"booker_id" db:"booker_id"`
	CommunityID uuid.UUID  `json:"community_id" db:"community_id"`
	Status      Status     `json:"status" db:"status"`
	TimeFrame   TimeFrame  `json:"time_frame" db:"time_frame"`
	DateNeed    *time.Time `json:"date_need,omitempty" db:"date_need"`
	DateReturn  *time.Time `json:"date_return,omitempty" db:"date_return"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// NewBooking validates the time frame rules and returns a pending
// booking. Dates are only meaningful for the specific time frame and
// are dropped otherwise.
func NewBooking(bookerID, postID, communityID uuid.UUID, timeFrame TimeFrame, dateNeed, dateReturn *time.Time) (*Booking, error) {
	switch timeFrame {
	case TimeFrameASAP, TimeFrameRandom:
		dateNeed, dateReturn = nil, nil
	case TimeFrameSpecific:
		if dateNeed == nil || dateReturn == nil {
			return nil, ErrMissingDates
		}
		if dateReturn.Before(*dateNeed) {
			return nil, ErrReturnBeforeNeed
		}
	default:
		return nil, ErrInvalidTimeFrame
	}

	now := time.Now().UTC()
	return &Booking{
		ID:          uuid.New(),
		PostID:      postID,
		BookerID:    bookerID,
		CommunityID: communityID,
		Status:      StatusPending,
		TimeFrame:   timeFrame,
		DateNeed:    dateNeed,
		DateReturn:  dateReturn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransitionTo reports whether the state machine allows moving to
// the target status. Only pending -> accepted/declined is legal.
func (b *Booking) CanTransitionTo(target Status) bool {
	return b.Status == StatusPending &&
		(target == StatusAccepted || target == StatusDeclined)
}
