package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/booking/domain"
)

type CreateBookingRequest struct {
	PostID      uuid.UUID  `json:"post_id" validate:"required"`
	CommunityID uuid.UUID  `json:"community_id" validate:"required"`
	TimeFrame   string     `json:"time_frame" validate:"required,oneof=asap random specific"`
	DateNeed    *time.Time `json:"date_need,omitempty"`
	DateReturn  *time.Time `json:"date_return,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type BookingResponse struct {
	ID          uuid.UUID  `json:"id"`
	BookerID    uuid.UUID  `json:"booker_id"`
	PostID      uuid.UUID  `json:"post_id"`
	CommunityID uuid.UUID  `json:"community_id"`
	Status      string     `json:"status"`
	TimeFrame   string     `json:"time_frame"`
	DateNeed    *time.Time `json:"date_need,omitempty"`
	DateReturn  *time.Time `json:"date_return,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		BookerID:    b.BookerID,
		PostID:      b.PostID,
		CommunityID: b.CommunityID,
		Status:      string(b.Status),
		TimeFrame:   string(b.TimeFrame),
		DateNeed:    b.DateNeed,
		DateReturn:  b.DateReturn,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
