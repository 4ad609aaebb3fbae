package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "front@desk.test", "operator")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "front@desk.test", claims.Email)
	assert.Equal(t, "operator", claims.Role)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "front@desk.test", "operator")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenFromDifferentSecretRejected(t *testing.T) {
	a := NewJWTManager("secret-a", time.Hour, 24*time.Hour)
	b := NewJWTManager("secret-b", time.Hour, 24*time.Hour)

	token, err := a.GenerateAccessToken(uuid.New(), "front@desk.test", "operator")
	require.NoError(t, err)

	_, err = b.ValidateAccessToken(token)
	assert.Error(t, err)
}
