package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue(123, "u@example.com", "Rick", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "Rick", claims.DisplayName)
}

func TestJWTVerifier_Verify_roundtrip(t *testing.T) {
	secret := "test-secret"
	token, err := NewJWTIssuer(secret).Issue(42, "u@example.com", "Morty", time.Hour)
	require.NoError(t, err)

	userID, err := NewJWTVerifier(secret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWTVerifier_Verify_wrong_secret(t *testing.T) {
	token, err := NewJWTIssuer("secret-a").Issue(42, "u@example.com", "Morty", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_expired(t *testing.T) {
	token, err := NewJWTIssuer("secret").Issue(42, "u@example.com", "Morty", -time.Minute)
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").Verify(token)
	assert.Error(t, err)
}
