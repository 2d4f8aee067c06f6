package service

import (
	"testing"
	"time"

	"github.com/connecthq/connect/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() *AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
	}
	return NewAuthService(nil, nil, cfg, zap.NewNop())
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newAuthService()

	accessToken, refreshToken, expiresAt, err := svc.generateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	userID, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	svc := newAuthService()

	_, refreshToken, _, err := svc.generateTokens(42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(refreshToken)
	assert.EqualError(t, err, "invalid token type")
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc := newAuthService()

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	svc := newAuthService()

	accessToken, _, _, err := svc.generateTokens(7)
	require.NoError(t, err)

	other := NewAuthService(nil, nil, &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "different-secret",
			AccessTokenDuration:  time.Minute,
			RefreshTokenDuration: time.Hour,
		},
	}, zap.NewNop())

	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}
