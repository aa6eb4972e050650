package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

type PgMessageRepository struct {
	db *sqlx.DB
}

func NewPgMessageRepository(db *sqlx.DB) *PgMessageRepository {
	return &PgMessageRepository{db: db}
}

func (r *PgMessageRepository) Append(ctx context.Context, msg *domain.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO messages (id, notification_id, creator_id, content, created_at)
		VALUES (:id, :notification_id, :creator_id, :content, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, insert, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	// The author becomes the notifier; the thread bubbles to the top of
	// the recipient's feed.
	touch := `
		UPDATE notifications
		SET notifier_id = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, touch, msg.NotificationID, msg.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to touch notification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotificationNotFound
	}

	return tx.Commit()
}

func (r *PgMessageRepository) List(ctx context.Context, notificationID uuid.UUID, offset, limit int) ([]domain.Message, int, error) {
	countQuery := `SELECT COUNT(*) FROM messages WHERE notification_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, notificationID); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	// id breaks ties between messages created in the same instant, so
	// pages stay deterministic.
	query := `
		SELECT * FROM messages
		WHERE notification_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, notificationID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, total, nil
}

func (r *PgMessageRepository) ListAfter(ctx context.Context, notificationID, afterMessageID uuid.UUID, limit int) ([]domain.Message, error) {
	anchorQuery := `SELECT created_at FROM messages WHERE id = $1 AND notification_id = $2`
	var anchor sql.NullTime
	if err := r.db.GetContext(ctx, &anchor, anchorQuery, afterMessageID, notificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnknownCursor
		}
		return nil, fmt.Errorf("failed to resolve message cursor: %w", err)
	}

	query := `
		SELECT * FROM messages
		WHERE notification_id = $1 AND (created_at, id) > ($2, $3)
		ORDER BY created_at, id
		LIMIT $4
	`
	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, notificationID, anchor.Time, afterMessageID, limit); err != nil {
		return nil, fmt.Errorf("failed to list messages after cursor: %w", err)
	}
	return messages, nil
}
