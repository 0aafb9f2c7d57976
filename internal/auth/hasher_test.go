package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/happychat/chat-service/internal/apperror"
	"github.com/happychat/chat-service/internal/auth"
	"github.com/happychat/chat-service/internal/config"
)

func minCost() (int, error) {
	return bcrypt.MinCost, nil
}

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewHasher(minCost)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "password123", hash)

	assert.True(t, hasher.Verify("password123", hash))
	assert.False(t, hasher.Verify("password124", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestHasher_HashIsSalted(t *testing.T) {
	hasher := auth.NewHasher(minCost)

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	// Same plaintext, different salts, both must verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("password123", first))
	assert.True(t, hasher.Verify("password123", second))
}

func TestHasher_CostResolutionFails(t *testing.T) {
	resolveErr := errors.New("work factor unavailable")
	hasher := auth.NewHasher(func() (int, error) { return 0, resolveErr })

	_, err := hasher.Hash("password123")
	require.Error(t, err)

	var badRequest *apperror.BadRequest
	require.ErrorAs(t, err, &badRequest)
	assert.Contains(t, badRequest.Msg, "Bad request hashing password")
	assert.ErrorIs(t, err, resolveErr)
}

func TestHasher_HashingFails(t *testing.T) {
	// bcrypt rejects costs above MaxCost; the failure must surface as
	// a bad request, not a panic.
	hasher := auth.NewHasher(func() (int, error) { return bcrypt.MaxCost + 1, nil })

	_, err := hasher.Hash("password123")
	require.Error(t, err)

	var badRequest *apperror.BadRequest
	require.ErrorAs(t, err, &badRequest)
	assert.Contains(t, badRequest.Msg, "Bad request hashing password")
}

func TestHasher_CostFromEnvironment(t *testing.T) {
	hasher := auth.NewHasher(config.BcryptCost)

	t.Setenv("SALT_OR_ROUNDS", "4")
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("password123", hash))

	t.Setenv("SALT_OR_ROUNDS", "")
	_, err = hasher.Hash("password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrCostNotConfigured)
}

func TestHasher_VerifyGarbageHash(t *testing.T) {
	hasher := auth.NewHasher(minCost)
	assert.False(t, hasher.Verify("password123", "not-a-bcrypt-hash"))
}
