package services_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djstore/internal/api/services"
	"djstore/internal/config"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	svc, err := services.NewAuthService(&config.Config{
		JWTKey:        "test-signing-key",
		AdminUser:     "admin",
		AdminPassword: "hunter2",
	})
	require.NoError(t, err)
	return svc
}

func TestIssueTokenSignsValidJWT(t *testing.T) {
	svc := newAuthService(t)

	signed, err := svc.IssueToken("admin", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("test-signing-key"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["sub"])
	assert.NotNil(t, claims["exp"])
}

func TestIssueTokenRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.IssueToken("admin", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.IssueToken("someone", "hunter2")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
