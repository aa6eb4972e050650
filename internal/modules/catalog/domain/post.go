package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Post is the minimal slice of an item listing the coordination core
// needs: who owns it and which community it lives in. Item media,
// descriptions and search belong to the catalog frontend, not here.
type Post struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	CommunityID uuid.UUID `json:"community_id" db:"community_id"`
	Title       string    `json:"title" db:"title"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func NewPost(ownerID, communityID uuid.UUID, title string) (*Post, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Post{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		CommunityID: communityID,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyTitle   = errors.New("post title must not be empty")
)
