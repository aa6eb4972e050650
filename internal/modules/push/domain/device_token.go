package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DeviceToken is one push registration of one device. The token string
// is the provider's opaque identifier and the primary key; registering
// the same token again re-binds it to the new owner.
type DeviceToken struct {
	Token     string    `json:"token" db:"token"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

var (
	ErrTokenNotFound = errors.New("device token not found")
	ErrEmptyToken    = errors.New("device token must not be empty")
)
