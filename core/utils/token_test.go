package utils

import (
	"context"
	"testing"
	"time"

	"booker-api/core/config"
	"booker-api/core/constants"
	"booker-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func withJWTConfig(t *testing.T, ttl time.Duration) {
	t.Helper()
	prev, hadPrev := config.GetSafe()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret", Issuer: "booker-test", AccessTTL: ttl}})
	t.Cleanup(func() {
		if hadPrev {
			config.Set(prev)
		} else {
			config.Set(nil)
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	withJWTConfig(t, time.Hour)

	token, err := GenerateToken(42, "viewer@example.com")
	require.NoError(t, err)

	claims, err := ValidateAndParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "booker-test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestTokenExpired(t *testing.T) {
	withJWTConfig(t, time.Hour)

	past := time.Now().Add(-time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		UserID: 1,
		Scope:  constants.ScopeTokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateAndParseToken(token)
	require.True(t, errors.IsCode(err, errors.ErrTokenExpired))
}

func TestTokenGarbage(t *testing.T) {
	withJWTConfig(t, time.Hour)

	_, err := ValidateAndParseToken("not-a-token")
	require.True(t, errors.IsCode(err, errors.ErrInvalidTokenFormat))
}

func TestGetTokenFromHeader(t *testing.T) {
	require.Equal(t, "abc", GetTokenFromHeader("Bearer abc"))
	require.Equal(t, "abc", GetTokenFromHeader("bearer abc"))
	require.Empty(t, GetTokenFromHeader("Basic abc"))
	require.Empty(t, GetTokenFromHeader(""))
}

func TestTokenDataContext(t *testing.T) {
	_, ok := TokenDataFromContext(context.Background())
	require.False(t, ok)

	ctx := WithTokenData(context.Background(), &TokenClaims{UserID: 3})
	claims, ok := TokenDataFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, int64(3), claims.UserID)
}

func TestDeviceIDs(t *testing.T) {
	id := GenerateDeviceID()
	require.Len(t, id, 21)
	require.True(t, IsValidDeviceID(id))
	require.True(t, IsValidDeviceID(GenerateID()))
	require.False(t, IsValidDeviceID("short"))
	require.False(t, IsValidDeviceID("has space in it"))
	require.NotEqual(t, id, GenerateDeviceID())
}
