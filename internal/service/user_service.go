package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers profile reads and updates. Username is immutable after
// registration.
type UserService struct {
	userRepo  repository.UserRepository
	mediaRepo repository.MediaRepository
}

func NewUserService(userRepo repository.UserRepository, mediaRepo repository.MediaRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateAccountInput struct {
	Fullname string
	Email    string
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*domain.User, error) {
	if strings.TrimSpace(input.Fullname) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fullname := strings.TrimSpace(input.Fullname)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.userRepo.UpdateProfile(ctx, userID, fullname, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	user.Fullname = fullname
	user.Email = email
	return user, nil
}

// AttachMedia points the user's avatar or cover at a previously uploaded
// media object. The object must belong to the user.
func (s *UserService) AttachMedia(ctx context.Context, userID uuid.UUID, storageKey string, kind domain.MediaKind) (*domain.User, error) {
	if strings.TrimSpace(storageKey) == "" {
		return nil, domain.ErrMissingFields
	}

	object, err := s.mediaRepo.GetByStorageKey(ctx, storageKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	if object.OwnerID != userID {
		return nil, domain.ErrMediaNotOwned
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.MediaKindAvatar:
		if err := s.userRepo.SetAvatar(ctx, userID, object.StorageKey); err != nil {
			return nil, err
		}
		user.AvatarKey = &object.StorageKey
	case domain.MediaKindCover:
		if err := s.userRepo.SetCover(ctx, userID, object.StorageKey); err != nil {
			return nil, err
		}
		user.CoverKey = &object.StorageKey
	default:
		return nil, domain.ErrInvalidInput
	}

	return user, nil
}
