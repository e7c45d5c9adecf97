package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, VerifyPassword(hash, "s3cret-pass"))
	require.False(t, VerifyPassword(hash, "wrong-pass"))
	require.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestNewAccessTokenClaims(t *testing.T) {
	access, err := NewAccessToken("secret", 42, "OWNER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)

	tok, err := jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "OWNER", claims["role"])
}

func TestNewRefreshTokenUniqueAndHashable(t *testing.T) {
	a, err := NewRefreshToken(7)
	require.NoError(t, err)
	b, err := NewRefreshToken(7)
	require.NoError(t, err)

	require.Len(t, a.Raw, 96) // 48 random bytes hex encoded
	require.NotEqual(t, a.Raw, b.Raw)

	// The stored form is a stable SHA-256 digest of the raw value.
	require.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	require.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
	require.Len(t, HashRefreshRaw(a.Raw), 64)
}
