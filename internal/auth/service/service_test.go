package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
	"github.com/kabisa/ebmbridge/internal/auth/repository"
	"github.com/kabisa/ebmbridge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&authdomain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zap.NewNop(),
		Cfg:   config.Config{AuthJWTSecret: "test-secret", AuthTokenTTL: time.Hour},
		Repo:  repository.New(dbConn),
		GenID: node,
	})
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := svc.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    "Alice@Example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

func TestChangePasswordRotatesCredential(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID.String(), "rotated-password"))

	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "alice@example.com", Password: "correct-password"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Email: "alice@example.com", Password: "rotated-password"})
	assert.NoError(t, err)
}
