package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

// Dispatcher is the fan-out collaborator. Implementations detach from
// the calling request; none of these calls may fail the mutation that
// triggered them.
type Dispatcher interface {
	MessageCreated(n *domain.Notification, msg *domain.Message)
	NotificationCreated(n *domain.Notification)
}

// NotificationService owns the unified activity feed: chat threads,
// booking records and fulfilled requests, their messages, and the
// per-thread unread flag.
type NotificationService struct {
	notifications domain.NotificationRepository
	messages      domain.MessageRepository
	dispatcher    Dispatcher
	logger        *slog.Logger
}

func NewNotificationService(
	notifications domain.NotificationRepository,
	messages domain.MessageRepository,
	dispatcher Dispatcher,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		messages:      messages,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// StartChat returns the chat thread between creator and recipient in
// the community, creating it if this is the first contact. The bool is
// true only when this call inserted the thread. Both participants
// racing to open the same conversation end up with the same thread:
// the insert loses to the per-pair unique index and turns into a fetch.
func (s *NotificationService) StartChat(ctx context.Context, creatorID, recipientID, communityID uuid.UUID) (*domain.Notification, bool, error) {
	if existing, err := s.notifications.FindChat(ctx, communityID, creatorID, recipientID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotificationNotFound) {
		return nil, false, err
	}

	n, err := domain.NewChatNotification(creatorID, recipientID, communityID)
	if err != nil {
		return nil, false, err
	}

	err = s.notifications.Insert(ctx, n)
	if err == nil {
		return n, true, nil
	}
	if !errors.Is(err, domain.ErrDuplicateChat) {
		return nil, false, err
	}

	// Lost the creation race; the other participant's insert must be
	// visible now. A second miss means something is genuinely wrong.
	existing, err := s.notifications.FindChat(ctx, communityID, creatorID, recipientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return nil, false, domain.ErrChatConflict
		}
		return nil, false, err
	}
	return existing, false, nil
}

// AppendMessage adds a message to the thread, flags the thread unread
// on behalf of the author, and fans the message out.
func (s *NotificationService) AppendMessage(ctx context.Context, notificationID, authorID uuid.UUID, content string) (*domain.Message, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !n.Participant(authorID) {
		return nil, domain.ErrNotParticipant
	}

	msg, err := domain.NewMessage(notificationID, authorID, content)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	n.NotifierID = &authorID
	s.dispatcher.MessageCreated(n, msg)
	return msg, nil
}

// MarkRead records that the viewer has caught up on the thread. The
// unread flag only clears when it was raised by the other participant;
// viewing your own pending action changes nothing.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, viewerID uuid.UUID) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !n.Participant(viewerID) {
		return domain.ErrNotParticipant
	}
	return s.notifications.ClearNotifier(ctx, notificationID, viewerID)
}

// CreateRequestNotification records that the creator's post fulfils the
// recipient's open request. Unlike chats these are never deduplicated;
// every fulfilled request gets its own entry.
func (s *NotificationService) CreateRequestNotification(ctx context.Context, creatorID, recipientID, communityID, postID uuid.UUID) (*domain.Notification, error) {
	n, err := domain.NewRequestNotification(creatorID, recipientID, communityID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		return nil, err
	}

	s.dispatcher.NotificationCreated(n)
	return n, nil
}

// ListForCommunity returns the viewer's feed page, most recently
// updated first.
func (s *NotificationService) ListForCommunity(ctx context.Context, communityID, viewerID uuid.UUID, offset, limit int) ([]domain.Notification, bool, error) {
	offset, limit = normalizePage(offset, limit)

	notifications, total, err := s.notifications.ListForCommunity(ctx, communityID, viewerID, offset, limit)
	if err != nil {
		return nil, false, err
	}
	hasMore := offset+len(notifications) < total
	return notifications, hasMore, nil
}

// PaginateMessages returns one offset window of the thread's history,
// oldest first.
func (s *NotificationService) PaginateMessages(ctx context.Context, notificationID, viewerID uuid.UUID, offset, limit int) ([]domain.Message, bool, error) {
	offset, limit = normalizePage(offset, limit)

	if err := s.requireParticipant(ctx, notificationID, viewerID); err != nil {
		return nil, false, err
	}

	messages, total, err := s.messages.List(ctx, notificationID, offset, limit)
	if err != nil {
		return nil, false, err
	}
	return messages, offset+limit < total, nil
}

// MessagesAfter returns messages newer than the cursor message, the
// keyset form clients use to catch up after a reconnect. Unlike offset
// windows it cannot skip or duplicate entries when new messages land
// concurrently.
func (s *NotificationService) MessagesAfter(ctx context.Context, notificationID, viewerID, afterMessageID uuid.UUID, limit int) ([]domain.Message, error) {
	_, limit = normalizePage(0, limit)

	if err := s.requireParticipant(ctx, notificationID, viewerID); err != nil {
		return nil, err
	}
	return s.messages.ListAfter(ctx, notificationID, afterMessageID, limit)
}

func (s *NotificationService) requireParticipant(ctx context.Context, notificationID, viewerID uuid.UUID) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if !n.Participant(viewerID) {
		return domain.ErrNotParticipant
	}
	return nil
}

func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
