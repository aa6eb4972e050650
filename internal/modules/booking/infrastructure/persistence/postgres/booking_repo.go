package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/booking/domain"
	notifdomain "github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

type PgBookingRepository struct {
	db *sqlx.DB
}

func NewPgBookingRepository(db *sqlx.DB) *PgBookingRepository {
	return &PgBookingRepository{db: db}
}

func (r *PgBookingRepository) CreateWithNotification(ctx context.Context, b *domain.Booking, n *notifdomain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin booking create: %w", err)
	}
	defer tx.Rollback()

	bookingInsert := `
		INSERT INTO bookings (id, post_id, booker_id, community_id, status, time_frame, date_need, date_return, created_at, updated_at)
		VALUES (:id, :post_id, :booker_id, :community_id, :status, :time_frame, :date_need, :date_return, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, bookingInsert, b); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	notificationInsert := `
		INSERT INTO notifications (id, type, creator_id, recipient_id, community_id, notifier_id, booking_id, post_id, created_at, updated_at)
		VALUES (:id, :type, :creator_id, :recipient_id, :community_id, :notifier_id, :booking_id, :post_id, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, notificationInsert, n); err != nil {
		return fmt.Errorf("failed to insert booking notification: %w", err)
	}

	return tx.Commit()
}

func (r *PgBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`

	var b domain.Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

func (r *PgBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, target domain.Status) (bool, error) {
	// Conditional on pending so a concurrent resolution loses cleanly
	// instead of overwriting a terminal state.
	query := `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`
	res, err := r.db.ExecContext(ctx, query, id, target)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
