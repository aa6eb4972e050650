package domain

import (
	"context"

	"github.com/google/uuid"
)

type DeviceTokenRepository interface {
	// Save registers a token, re-binding it if it already exists.
	Save(ctx context.Context, t *DeviceToken) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]DeviceToken, error)
	// Delete removes a token regardless of owner; used by reconciliation.
	Delete(ctx context.Context, token string) error
	// DeleteForOwner removes a token only when the caller owns it.
	DeleteForOwner(ctx context.Context, token string, ownerID uuid.UUID) error
}
