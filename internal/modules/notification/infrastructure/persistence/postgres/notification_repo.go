package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

const pqUniqueViolation = "23505"

type PgNotificationRepository struct {
	db *sqlx.DB
}

func NewPgNotificationRepository(db *sqlx.DB) *PgNotificationRepository {
	return &PgNotificationRepository{db: db}
}

func (r *PgNotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, type, creator_id, recipient_id, community_id, notifier_id, booking_id, post_id, created_at, updated_at)
		VALUES (:id, :type, :creator_id, :recipient_id, :community_id, :notifier_id, :booking_id, :post_id, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrDuplicateChat
		}
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *PgNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `SELECT * FROM notifications WHERE id = $1`

	var n domain.Notification
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &n, nil
}

func (r *PgNotificationRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Notification, error) {
	query := `SELECT * FROM notifications WHERE booking_id = $1`

	var n domain.Notification
	if err := r.db.GetContext(ctx, &n, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification by booking: %w", err)
	}
	return &n, nil
}

func (r *PgNotificationRepository) FindChat(ctx context.Context, communityID, userA, userB uuid.UUID) (*domain.Notification, error) {
	// Either participant may have opened the thread, so match both
	// orientations of the pair.
	query := `
		SELECT * FROM notifications
		WHERE type = 'chat' AND community_id = $1
		  AND ((creator_id = $2 AND recipient_id = $3) OR (creator_id = $3 AND recipient_id = $2))
	`

	var n domain.Notification
	if err := r.db.GetContext(ctx, &n, query, communityID, userA, userB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find chat notification: %w", err)
	}
	return &n, nil
}

func (r *PgNotificationRepository) SetNotifier(ctx context.Context, id, notifierID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET notifier_id = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, notifierID)
	if err != nil {
		return fmt.Errorf("failed to set notifier: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *PgNotificationRepository) ClearNotifier(ctx context.Context, id, viewerID uuid.UUID) error {
	// The condition makes the clear a no-op when the viewer is the one
	// who caused the pending unread event; their own action is not
	// something they need to catch up on.
	query := `
		UPDATE notifications
		SET notifier_id = NULL
		WHERE id = $1 AND notifier_id IS NOT NULL AND notifier_id <> $2
	`
	if _, err := r.db.ExecContext(ctx, query, id, viewerID); err != nil {
		return fmt.Errorf("failed to clear notifier: %w", err)
	}
	return nil
}

func (r *PgNotificationRepository) ListForCommunity(ctx context.Context, communityID, viewerID uuid.UUID, offset, limit int) ([]domain.Notification, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM notifications
		WHERE community_id = $1 AND (creator_id = $2 OR recipient_id = $2)
	`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, communityID, viewerID); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT * FROM notifications
		WHERE community_id = $1 AND (creator_id = $2 OR recipient_id = $2)
		ORDER BY updated_at DESC
		LIMIT $3 OFFSET $4
	`
	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, communityID, viewerID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}
