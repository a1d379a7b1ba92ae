package repository

import (
	"context"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)

	// Profile writes are column-scoped so they can never carry a stale
	// refresh_token or password_hash back over a concurrent write.
	UpdateProfile(ctx context.Context, id uuid.UUID, fullname, email string) error
	SetAvatar(ctx context.Context, id uuid.UUID, key string) error
	SetCover(ctx context.Context, id uuid.UUID, key string) error

	// SetRefreshToken overwrites the user's single session slot; nil clears it.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error

	// RotateRefreshToken swaps current for next only if current still matches
	// the stored reference. Returns false when the slot has moved on, so of
	// two concurrent rotations at most one can win.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error)

	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type MediaRepository interface {
	Create(ctx context.Context, object *domain.MediaObject) error
	GetByStorageKey(ctx context.Context, key string) (*domain.MediaObject, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.MediaObject, error)
}

type Repositories struct {
	User  UserRepository
	Media MediaRepository
}
