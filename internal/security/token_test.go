package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", 60)

	token, err := tm.GenerateAccessToken(42, "ana@rental.test", "MANAGER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.EmployeeID)
	assert.Equal(t, "ana@rental.test", claims.Email)
	assert.Equal(t, "MANAGER", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	other := NewTokenManager("secret-b", 60)

	token, err := tm.GenerateAccessToken(1, "x@rental.test", "STAFF")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	// Issue with a negative expiry so the token is already stale.
	tm := &tokenManager{secret: []byte("unit-test-secret"), expiry: -time.Hour}

	token, err := tm.GenerateAccessToken(1, "x@rental.test", "STAFF")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", 60)
	_, err := tm.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
