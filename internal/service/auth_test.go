package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := &AuthService{Repo: setupTestRepo(t), JWTSecret: []byte("test-secret")}
	ctx := context.Background()

	user, err := svc.Register(ctx, "T.Tesson@Edison-Energies.com", "Thomas Tesson", "demo123")
	require.NoError(t, err)
	require.Equal(t, "t.tesson@edison-energies.com", user.Email)
	require.Equal(t, "user", user.Role)
	require.NotEqual(t, "demo123", user.PasswordHash)
	require.Nil(t, user.LastLogin)

	logged, token, err := svc.Login(ctx, "t.tesson@edison-energies.com", "demo123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, logged.LastLogin)

	claims := accessClaims{}
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, "t.tesson@edison-energies.com", claims.Subject)
	require.Equal(t, "user", claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &AuthService{Repo: setupTestRepo(t), JWTSecret: []byte("test-secret")}
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.fr", "A", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.fr", "A again", "pw2")
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := &AuthService{Repo: setupTestRepo(t), JWTSecret: []byte("test-secret")}
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.fr", "A", "correct")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.fr", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@b.fr", "correct")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
