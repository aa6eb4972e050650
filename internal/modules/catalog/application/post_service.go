package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/modules/catalog/domain"
)

// PostService is the minimal catalog surface the coordination core
// leans on. It exists so bookings and request notifications have posts
// to point at; the full item catalog lives elsewhere.
type PostService struct {
	repo domain.PostRepository
}

func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) Create(ctx context.Context, ownerID, communityID uuid.UUID, title string) (*domain.Post, error) {
	p, err := domain.NewPost(ownerID, communityID, title)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PostService) ListByCommunity(ctx context.Context, communityID uuid.UUID, offset, limit int) ([]domain.Post, bool, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	posts, total, err := s.repo.ListByCommunity(ctx, communityID, offset, limit)
	if err != nil {
		return nil, false, err
	}
	return posts, offset+len(posts) < total, nil
}
