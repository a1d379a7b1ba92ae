package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_UpdateAccount(t *testing.T) {
	ts := testutil.NewTestServer(t)

	login := testutil.NewUserBuilder().WithUsername("accountuser").BuildAndLogin(t, ts)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "successful update",
			request: map[string]string{
				"fullname": "New Name",
				"email":    "newmail@example.com",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing email",
			request: map[string]string{
				"fullname": "New Name",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fullname",
			request:        map[string]string{"email": "a@b.c"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.AuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/users/me"), login.AccessToken, tt.request)
			defer resp.Body.Close()

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertErrorEnvelope(t, resp, tt.expectedStatus)
				return
			}

			var user testutil.UserPayload
			envelope := testutil.DecodeEnvelope(t, resp, &user)
			assert.Equal(t, "New Name", user.Fullname)
			assert.Equal(t, "newmail@example.com", user.Email)
			// Username is immutable.
			assert.Equal(t, "accountuser", user.Username)
			testutil.AssertNoSensitiveFields(t, envelope.Data)
		})
	}
}

func TestUserHandler_UpdateAccount_KeepsSessionAlive(t *testing.T) {
	ts := testutil.NewTestServer(t)

	login := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	resp := testutil.AuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/users/me"), login.AccessToken, map[string]string{
		"fullname": "Renamed User",
		"email":    "renamed@example.com",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The refresh token issued before the profile edit must still redeem.
	resp = testutil.AuthenticatedRequest(t, http.MethodPost, ts.APIURL("/users/refresh-token"), "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	defer resp.Body.Close()

	var pair testutil.TokenPairPayload
	testutil.DecodeEnvelope(t, resp, &pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)
}

func TestUserHandler_UpdateAccount_EmailConflict(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().WithEmail("claimed@example.com").Build(t, ts.DB.DB)
	login := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	resp := testutil.AuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/users/me"), login.AccessToken, map[string]string{
		"fullname": "Any Name",
		"email":    "claimed@example.com",
	})
	defer resp.Body.Close()

	testutil.AssertErrorEnvelope(t, resp, http.StatusConflict)
}

func TestUserHandler_AttachAvatar(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	login := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	userID := uuid.MustParse(login.User.ID)

	object := &domain.MediaObject{
		ID:         uuid.New(),
		OwnerID:    userID,
		StorageKey: "users/" + login.User.ID + "/avatar-object",
		Kind:       domain.MediaKindAvatar,
	}
	require.NoError(t, ts.Repos.Media.Create(ctx, object))

	stranger := &domain.MediaObject{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		StorageKey: "users/someone-else/avatar-object",
		Kind:       domain.MediaKindAvatar,
	}
	require.NoError(t, ts.Repos.Media.Create(ctx, stranger))

	tests := []struct {
		name           string
		storageKey     string
		expectedStatus int
	}{
		{name: "own object", storageKey: object.StorageKey, expectedStatus: http.StatusOK},
		{name: "unknown key", storageKey: "users/nobody/missing", expectedStatus: http.StatusNotFound},
		{name: "someone else's object", storageKey: stranger.StorageKey, expectedStatus: http.StatusNotFound},
		{name: "blank key", storageKey: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.AuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/users/avatar"), login.AccessToken, map[string]string{
				"storageKey": tt.storageKey,
			})
			defer resp.Body.Close()

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertErrorEnvelope(t, resp, tt.expectedStatus)
				return
			}

			var user struct {
				AvatarKey *string `json:"avatarKey"`
			}
			testutil.DecodeEnvelope(t, resp, &user)
			require.NotNil(t, user.AvatarKey)
			assert.Equal(t, object.StorageKey, *user.AvatarKey)
		})
	}
}
