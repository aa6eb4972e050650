package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/booking/domain"
	notifdomain "github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

// PostDirectory resolves ownership of the post being booked. Returns
// domain.ErrPostNotFound when the post does not exist.
type PostDirectory interface {
	Owner(ctx context.Context, postID uuid.UUID) (uuid.UUID, error)
}

// NotificationFlipper is the slice of the notification store the
// booking flow needs to re-flag the linked thread after a resolution.
type NotificationFlipper interface {
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*notifdomain.Notification, error)
	SetNotifier(ctx context.Context, id, notifierID uuid.UUID) error
}

// Dispatcher fans booking events out; calls detach from the request.
type Dispatcher interface {
	NotificationCreated(n *notifdomain.Notification)
	BookingUpdated(n *notifdomain.Notification, b *domain.Booking)
}

// BookingService drives the booking lifecycle: a booker opens a pending
// booking against someone's post, and the post owner resolves it
// exactly once.
type BookingService struct {
	bookings      domain.BookingRepository
	notifications NotificationFlipper
	posts         PostDirectory
	dispatcher    Dispatcher
	logger        *slog.Logger
}

func NewBookingService(
	bookings domain.BookingRepository,
	notifications NotificationFlipper,
	posts PostDirectory,
	dispatcher Dispatcher,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings:      bookings,
		notifications: notifications,
		posts:         posts,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// Create opens a pending booking and, atomically with it, the booking
// notification addressed to the post owner.
func (s *BookingService) Create(ctx context.Context, bookerID, postID, communityID uuid.UUID, timeFrame domain.TimeFrame, dateNeed, dateReturn *time.Time) (*domain.Booking, error) {
	ownerID, err := s.posts.Owner(ctx, postID)
	if err != nil {
		return nil, err
	}
	if ownerID == bookerID {
		return nil, domain.ErrOwnPost
	}

	b, err := domain.NewBooking(bookerID, postID, communityID, timeFrame, dateNeed, dateReturn)
	if err != nil {
		return nil, err
	}
	n, err := notifdomain.NewBookingNotification(bookerID, ownerID, communityID, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build booking notification: %w", err)
	}

	if err := s.bookings.CreateWithNotification(ctx, b, n); err != nil {
		return nil, err
	}

	s.dispatcher.NotificationCreated(n)
	return b, nil
}

// UpdateStatus resolves a pending booking. Only the post owner may
// resolve, and only once: a second resolution attempt fails with
// ErrInvalidTransition no matter which status it asks for.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, actorID uuid.UUID, target domain.Status) (*domain.Booking, error) {
	if !domain.ValidStatus(target) {
		return nil, domain.ErrInvalidStatus
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.posts.Owner(ctx, b.PostID)
	if err != nil {
		return nil, err
	}
	if actorID != ownerID {
		return nil, domain.ErrNotPostOwner
	}
	if !b.CanTransitionTo(target) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}
	if !updated {
		// A concurrent resolution got there first.
		return nil, domain.ErrInvalidTransition
	}

	b.Status = target
	b.UpdatedAt = time.Now().UTC()

	// The booking itself is resolved at this point; the unread flip and
	// fan-out are best-effort follow-ups.
	n, err := s.notifications.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("booking resolved but notification lookup failed", "booking_id", bookingID, "error", err)
		return b, nil
	}
	if err := s.notifications.SetNotifier(ctx, n.ID, b.BookerID); err != nil {
		s.logger.Error("booking resolved but notifier flip failed", "booking_id", bookingID, "error", err)
		return b, nil
	}
	n.NotifierID = &b.BookerID

	s.dispatcher.BookingUpdated(n, b)
	return b, nil
}

// Get returns one booking; both participants of the exchange may look
// it up.
func (s *BookingService) Get(ctx context.Context, bookingID, viewerID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.posts.Owner(ctx, b.PostID)
	if err != nil {
		return nil, err
	}
	if viewerID != b.BookerID && viewerID != ownerID {
		return nil, domain.ErrNotPostOwner
	}
	return b, nil
}
