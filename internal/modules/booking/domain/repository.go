package domain

import (
	"context"

	"github.com/google/uuid"

	notifdomain "github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

type BookingRepository interface {
	// CreateWithNotification inserts the booking and its notification
	// in one transaction; either both rows land or neither does.
	CreateWithNotification(ctx context.Context, b *Booking, n *notifdomain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// UpdateStatus moves the booking out of pending. The update is
	// conditional on the current status still being pending and reports
	// whether a row was changed, so two racing resolutions cannot both
	// win.
	UpdateStatus(ctx context.Context, id uuid.UUID, target Status) (bool, error)
}
