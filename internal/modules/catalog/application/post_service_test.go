package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendly/lendly-backend/internal/modules/catalog/domain"
)

type postRepoMock struct {
	createFn          func(context.Context, *domain.Post) error
	getByIDFn         func(context.Context, uuid.UUID) (*domain.Post, error)
	listByCommunityFn func(context.Context, uuid.UUID, int, int) ([]domain.Post, int, error)
}

func (m postRepoMock) Create(ctx context.Context, p *domain.Post) error { return m.createFn(ctx, p) }
func (m postRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return m.getByIDFn(ctx, id)
}
func (m postRepoMock) ListByCommunity(ctx context.Context, communityID uuid.UUID, offset, limit int) ([]domain.Post, int, error) {
	return m.listByCommunityFn(ctx, communityID, offset, limit)
}

func TestPostService_Create(t *testing.T) {
	owner := uuid.New()
	community := uuid.New()

	t.Run("persists a titled post", func(t *testing.T) {
		var created *domain.Post
		repo := postRepoMock{
			createFn: func(_ context.Context, p *domain.Post) error {
				created = p
				return nil
			},
		}
		svc := NewPostService(repo)

		p, err := svc.Create(context.Background(), owner, community, "cordless drill")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, created.ID, p.ID)
		assert.Equal(t, owner, p.OwnerID)
	})

	t.Run("rejects empty titles", func(t *testing.T) {
		svc := NewPostService(postRepoMock{})

		_, err := svc.Create(context.Background(), owner, community, "")
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})
}

func TestPostService_ListByCommunity(t *testing.T) {
	community := uuid.New()

	repo := postRepoMock{
		listByCommunityFn: func(_ context.Context, _ uuid.UUID, offset, limit int) ([]domain.Post, int, error) {
			return make([]domain.Post, 2), 10, nil
		},
	}
	svc := NewPostService(repo)

	posts, hasMore, err := svc.ListByCommunity(context.Background(), community, 0, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.True(t, hasMore)
}
