package utils_test

import (
	"testing"
	"time"

	"github.com/gastos-app/gastos_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := "user_123"
	issuer := "gastos-backend"

	token, err := utils.GenerateJWT(userID, secret, time.Hour, issuer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("user_123", "right-secret", time.Hour, "gastos-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("user_123", "secret", -time.Minute, "gastos-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestParseAndValidateJWT_Garbage(t *testing.T) {
	_, err := utils.ParseAndValidateJWT("not.a.token", "secret")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	hash := utils.HashToken("some-token")

	assert.Len(t, hash, 64, "sha256 hex digest")
	assert.Equal(t, hash, utils.HashToken("some-token"), "hashing is deterministic")
	assert.NotEqual(t, hash, utils.HashToken("other-token"))

	assert.True(t, utils.CompareTokenHash("some-token", hash))
	assert.False(t, utils.CompareTokenHash("other-token", hash))
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s, 64)

	other, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, utils.CheckPasswordHash("s3cret-password", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-password", hash))
}
