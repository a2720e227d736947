package service_test

import (
	"context"
	"testing"

	"github.com/mart/ranking-admin/internal/repository/fixture"
	"github.com/mart/ranking-admin/internal/service"
	"github.com/mart/ranking-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *service.AuthService {
	repos := fixture.NewRepositories(fixture.Empty())
	return service.NewAuthService(repos.User, repos.Session, testutil.TestConfig())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, service.RegisterInput{
		DisplayName: "admin",
		Password:    "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.DisplayName)

	login, err := svc.Login(ctx, service.LoginInput{
		DisplayName: "admin",
		Password:    "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestAuthService_Register_DuplicateDisplayName(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{DisplayName: "admin", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, service.RegisterInput{DisplayName: "admin", Password: "other456"})
	assert.ErrorIs(t, err, service.ErrDisplayNameExists)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{DisplayName: "admin", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, service.LoginInput{DisplayName: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, service.LoginInput{DisplayName: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, service.RegisterInput{DisplayName: "admin", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), (*claims)["sub"])

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
