package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lendly/lendly-backend/internal/modules/catalog/domain"
)

type PgPostRepository struct {
	db *sqlx.DB
}

func NewPgPostRepository(db *sqlx.DB) *PgPostRepository {
	return &PgPostRepository{db: db}
}

func (r *PgPostRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `
		INSERT INTO posts (id, owner_id, community_id, title, created_at)
		VALUES (:id, :owner_id, :community_id, :title, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *PgPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := `SELECT * FROM posts WHERE id = $1`

	var p domain.Post
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

func (r *PgPostRepository) ListByCommunity(ctx context.Context, communityID uuid.UUID, offset, limit int) ([]domain.Post, int, error) {
	countQuery := `SELECT COUNT(*) FROM posts WHERE community_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, communityID); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := `
		SELECT * FROM posts
		WHERE community_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	posts := []domain.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, communityID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}
