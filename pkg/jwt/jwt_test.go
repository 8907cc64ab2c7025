package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAndParseToken(t *testing.T) {
	Init("test-secret", time.Hour, 24*time.Hour)

	aToken, rToken, err := GenToken(12345, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseTokenInvalid(t *testing.T) {
	Init("test-secret", time.Hour, 24*time.Hour)
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	Init("secret-a", time.Hour, 24*time.Hour)
	aToken, _, err := GenToken(1, "a@b.com")
	require.NoError(t, err)

	Init("secret-b", time.Hour, 24*time.Hour)
	_, err = ParseToken(aToken)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	Init("test-secret", time.Hour, 24*time.Hour)
	aToken, rToken, err := GenToken(12345, "user@example.com")
	require.NoError(t, err)

	newA, newR, err := RefreshToken(aToken, rToken)
	require.NoError(t, err)
	require.NotEmpty(t, newA)
	require.NotEmpty(t, newR)

	claims, err := ParseToken(newA)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), claims.UserID)
}

func TestRefreshTokenBadRefresh(t *testing.T) {
	Init("test-secret", time.Hour, 24*time.Hour)
	aToken, _, err := GenToken(12345, "user@example.com")
	require.NoError(t, err)

	_, _, err = RefreshToken(aToken, "garbage")
	assert.Error(t, err)
}
