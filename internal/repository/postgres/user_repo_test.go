package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/repository/postgres"
	"github.com/arjunv/vidtube/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "testuser",
				Email:        "testuser@example.com",
				Fullname:     "Test User",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
		},
		{
			name: "duplicate username",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "testuser", // Same as above
				Email:        "other@example.com",
				Fullname:     "Other User",
				PasswordHash: "hashedpassword2",
			},
			wantErr: gorm.ErrDuplicatedKey,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "otheruser",
				Email:        "testuser@example.com", // Same as first
				Fullname:     "Other User",
				PasswordHash: "hashedpassword3",
			},
			wantErr: gorm.ErrDuplicatedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByUsernameOrEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("lookup_user").
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  bool
	}{
		{name: "by username", username: "lookup_user"},
		{name: "by email", email: "lookup@example.com"},
		{name: "username matches even with wrong email", username: "lookup_user", email: "none@example.com"},
		{name: "no match", username: "nonexistent", email: "none@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByUsernameOrEmail(ctx, tt.username, tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestUserRepository_SetRefreshToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tokenValue := "some-refresh-token"
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, &tokenValue))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, tokenValue, *got.RefreshToken)

	// nil clears the slot
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, nil))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)
}

func TestUserRepository_RotateRefreshToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	current := "token-1"
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, &current))

	// Matching swap wins.
	rotated, err := repo.RotateRefreshToken(ctx, user.ID, "token-1", "token-2")
	require.NoError(t, err)
	assert.True(t, rotated)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, "token-2", *got.RefreshToken)

	// Replaying the old token loses and leaves the slot untouched.
	rotated, err = repo.RotateRefreshToken(ctx, user.ID, "token-1", "token-3")
	require.NoError(t, err)
	assert.False(t, rotated)

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, "token-2", *got.RefreshToken)

	// A cleared slot cannot be rotated.
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, nil))
	rotated, err = repo.RotateRefreshToken(ctx, user.ID, "token-2", "token-4")
	require.NoError(t, err)
	assert.False(t, rotated)
}

func TestUserRepository_SetPasswordHash(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.SetPasswordHash(ctx, user.ID, "new-hash"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	err := repo.UpdateProfile(ctx, user.ID, "Updated Name", "updated@example.com")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", got.Fullname)
	assert.Equal(t, "updated@example.com", got.Email)
}

func TestUserRepository_UpdateProfile_DuplicateEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	taken, _ := testutil.NewUserBuilder().
		WithUsername("taken_user").
		WithEmail("taken@example.com").
		Build(t, testDB.DB)
	_ = taken

	user, _ := testutil.NewUserBuilder().
		WithUsername("updating_user").
		WithEmail("updating@example.com").
		Build(t, testDB.DB)

	err := repo.UpdateProfile(ctx, user.ID, user.Fullname, "taken@example.com")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_UpdateProfile_PreservesSessionColumns(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	originalHash := user.PasswordHash

	// The slot rotates after the profile record was loaded.
	first := "token-1"
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, &first))
	rotated, err := repo.RotateRefreshToken(ctx, user.ID, "token-1", "token-2")
	require.NoError(t, err)
	require.True(t, rotated)

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "New Name", "new@example.com"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, "token-2", *got.RefreshToken)
	assert.Equal(t, originalHash, got.PasswordHash)
}

func TestUserRepository_SetAvatarAndCover(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tokenValue := "live-token"
	require.NoError(t, repo.SetRefreshToken(ctx, user.ID, &tokenValue))

	require.NoError(t, repo.SetAvatar(ctx, user.ID, "users/a/avatar.png"))
	require.NoError(t, repo.SetCover(ctx, user.ID, "users/a/cover.png"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AvatarKey)
	assert.Equal(t, "users/a/avatar.png", *got.AvatarKey)
	require.NotNil(t, got.CoverKey)
	assert.Equal(t, "users/a/cover.png", *got.CoverKey)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, "live-token", *got.RefreshToken)
}
