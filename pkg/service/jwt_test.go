package service

import (
	"testing"
	"time"

	apperrors "lending-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokens(42, 3)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.UserID)
	assert.Equal(t, uint64(3), accessClaims.RoleID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := NewJWTService("secret-one", time.Hour, 24*time.Hour)
	other := NewJWTService("secret-two", time.Hour, 24*time.Hour)

	access, _, err := svc.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	access, _, err := svc.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)
	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
