package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

type PgDeviceTokenRepository struct {
	db *sqlx.DB
}

func NewPgDeviceTokenRepository(db *sqlx.DB) *PgDeviceTokenRepository {
	return &PgDeviceTokenRepository{db: db}
}

func (r *PgDeviceTokenRepository) Save(ctx context.Context, t *domain.DeviceToken) error {
	// A token moving between accounts (shared device, reinstall) simply
	// re-binds to the latest owner.
	query := `
		INSERT INTO device_tokens (token, owner_id, created_at)
		VALUES (:token, :owner_id, :created_at)
		ON CONFLICT (token) DO UPDATE SET owner_id = EXCLUDED.owner_id
	`
	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}
	return nil
}

func (r *PgDeviceTokenRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.DeviceToken, error) {
	query := `SELECT * FROM device_tokens WHERE owner_id = $1 ORDER BY created_at`

	tokens := []domain.DeviceToken{}
	if err := r.db.SelectContext(ctx, &tokens, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	return tokens, nil
}

func (r *PgDeviceTokenRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM device_tokens WHERE token = $1`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete device token: %w", err)
	}
	return nil
}

func (r *PgDeviceTokenRepository) DeleteForOwner(ctx context.Context, token string, ownerID uuid.UUID) error {
	query := `DELETE FROM device_tokens WHERE token = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, token, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete device token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}
