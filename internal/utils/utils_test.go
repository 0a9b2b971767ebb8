package utils_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/okovalen/freelance-platform-api/internal/utils"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	require.True(t, utils.CheckPassword(hash, "password123"))
	require.False(t, utils.CheckPassword(hash, "wrong"))
}

func TestSignJWT(t *testing.T) {
	token, err := utils.SignJWT("secret", "42", "freelancer", 60)
	require.NoError(t, err)

	var claims utils.Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "42", claims.UserID)
	require.Equal(t, "freelancer", claims.Role)
	require.NotEmpty(t, claims.ID)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}
