package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/repository"
	"github.com/arjunv/vidtube/internal/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService owns the credential and session lifecycle: registration,
// login, one-time-use refresh rotation, logout and password changes. A user
// has at most one active session, modeled by the single refresh-token slot
// on the user record.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, issuer *token.Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Fullname string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new identity. It does not establish a session; the
// client logs in afterwards.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	for _, field := range []string{input.Username, input.Email, input.Password, input.Fullname} {
		if strings.TrimSpace(field) == "" {
			return nil, domain.ErrMissingFields
		}
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.GetByUsernameOrEmail(ctx, username, email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		Fullname:     strings.TrimSpace(input.Fullname),
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraints close the race between the lookup above
		// and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the password and establishes a session, overwriting any
// refresh token issued previously.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if strings.TrimSpace(input.Username) == "" && strings.TrimSpace(input.Email) == "" {
		return nil, domain.ErrMissingIdentifier
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = &refreshToken

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
// Rotation is one-time-use: the presented token must match the stored slot
// exactly and the swap to the new token is a compare-and-swap, so a rotated
// or concurrently raced token can never be redeemed twice. A mismatch on a
// cryptographically valid token means reuse of a stale token and is
// rejected outright.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidSession
	}

	userID, _, err := s.issuer.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, domain.ErrInvalidSession
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, domain.ErrInvalidSession
	}

	accessToken, err := s.issuer.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	rotated, err := s.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, newRefreshToken)
	if err != nil {
		return nil, err
	}
	if !rotated {
		// A concurrent refresh or logout moved the slot first.
		return nil, domain.ErrInvalidSession
	}
	user.RefreshToken = &newRefreshToken

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout clears the session slot. Outstanding access tokens stay valid
// until natural expiry.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.SetRefreshToken(ctx, userID, nil)
}

// ChangePassword replaces the password hash after verifying the current
// password, then clears the session slot so the refresh token issued under
// the old credential cannot outlive it.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return domain.ErrMissingFields
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetPasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	return s.userRepo.SetRefreshToken(ctx, userID, nil)
}

// VerifyAccessToken resolves an access token to its principal. Used by the
// auth middleware; performs no writes.
func (s *AuthService) VerifyAccessToken(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, _, err := s.issuer.Verify(accessToken, token.KindAccess)
	if err != nil {
		return nil, domain.ErrInvalidSession
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}
