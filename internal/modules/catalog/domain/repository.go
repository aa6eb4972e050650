package domain

import (
	"context"

	"github.com/google/uuid"
)

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	ListByCommunity(ctx context.Context, communityID uuid.UUID, offset, limit int) ([]Post, int, error)
}
