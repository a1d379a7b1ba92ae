package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/repository/postgres"
	"github.com/arjunv/vidtube/internal/service"
	"github.com/arjunv/vidtube/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaService_RequestUpload(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	mediaService := service.NewMediaService(repos.Media, testutil.TestConfig())
	ctx := context.Background()

	ownerID := uuid.New()

	grant, err := mediaService.RequestUpload(ctx, ownerID, domain.MediaKindAvatar, service.UploadMetadata{
		ContentType: "image/png",
		Filename:    "me.png",
		SizeBytes:   1024,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(grant.StorageKey, "users/"+ownerID.String()+"/"))
	assert.Contains(t, grant.UploadURL, grant.StorageKey)

	// The pending object is recorded against its owner.
	object, err := repos.Media.GetByStorageKey(ctx, grant.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, ownerID, object.OwnerID)
	assert.Equal(t, domain.MediaKindAvatar, object.Kind)
	assert.Contains(t, string(object.Metadata), "image/png")
}

func TestMediaService_RequestUpload_UnknownKind(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	mediaService := service.NewMediaService(repos.Media, testutil.TestConfig())

	_, err := mediaService.RequestUpload(context.Background(), uuid.New(), domain.MediaKind("banner"), service.UploadMetadata{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMediaService_DownloadURL(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	mediaService := service.NewMediaService(repos.Media, testutil.TestConfig())
	ctx := context.Background()

	ownerID := uuid.New()
	grant, err := mediaService.RequestUpload(ctx, ownerID, domain.MediaKindCover, service.UploadMetadata{})
	require.NoError(t, err)

	url, err := mediaService.DownloadURL(ctx, ownerID, grant.StorageKey)
	require.NoError(t, err)
	assert.Contains(t, url, grant.StorageKey)

	_, err = mediaService.DownloadURL(ctx, uuid.New(), grant.StorageKey)
	assert.ErrorIs(t, err, domain.ErrMediaNotOwned)

	_, err = mediaService.DownloadURL(ctx, ownerID, "users/nope/missing")
	assert.ErrorIs(t, err, domain.ErrMediaNotFound)
}
