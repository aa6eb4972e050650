package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

// TokenService manages explicit device registrations. Reactive removal
// of dead tokens happens in the Deliverer, not here.
type TokenService struct {
	repo domain.DeviceTokenRepository
}

func NewTokenService(repo domain.DeviceTokenRepository) *TokenService {
	return &TokenService{repo: repo}
}

func (s *TokenService) Register(ctx context.Context, ownerID uuid.UUID, token string) error {
	if token == "" {
		return domain.ErrEmptyToken
	}
	return s.repo.Save(ctx, &domain.DeviceToken{
		Token:     token,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *TokenService) Unregister(ctx context.Context, ownerID uuid.UUID, token string) error {
	if token == "" {
		return domain.ErrEmptyToken
	}
	return s.repo.DeleteForOwner(ctx, token, ownerID)
}
