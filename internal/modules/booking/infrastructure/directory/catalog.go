package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	bookingdomain "github.com/lendly/lendly-backend/internal/modules/booking/domain"
	catalogdomain "github.com/lendly/lendly-backend/internal/modules/catalog/domain"
)

// CatalogDirectory adapts the catalog module to the booking module's
// PostDirectory port, translating catalog sentinels into booking ones
// so the booking flow never leaks another module's error vocabulary.
type CatalogDirectory struct {
	posts catalogdomain.PostRepository
}

func NewCatalogDirectory(posts catalogdomain.PostRepository) *CatalogDirectory {
	return &CatalogDirectory{posts: posts}
}

func (d *CatalogDirectory) Owner(ctx context.Context, postID uuid.UUID) (uuid.UUID, error) {
	p, err := d.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrPostNotFound) {
			return uuid.Nil, bookingdomain.ErrPostNotFound
		}
		return uuid.Nil, err
	}
	return p.OwnerID, nil
}
