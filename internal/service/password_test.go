package service_test

import (
	"testing"

	"github.com/arjunv/vidtube/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := service.NewBcryptHasher()

	hash, err := hasher.Hash("p@ss")
	require.NoError(t, err)
	assert.NotEqual(t, "p@ss", hash)

	assert.True(t, hasher.Verify("p@ss", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("p@ss", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_SaltedPerHash(t *testing.T) {
	hasher := service.NewBcryptHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	// Random salt means two hashes of the same input differ.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}
