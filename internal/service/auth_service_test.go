package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/config"
	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			AccessSecret:         "test-access",
			RefreshSecret:        "test-refresh",
			AccessTokenTTLHours:  1,
			RefreshTokenTTLHours: 2,
			BcryptCost:           4,
		},
	}
}

func newTestAuthService() (*AuthService, *memoryUserRepo, *memoryActionTokenRepo) {
	users := newMemoryUserRepo()
	tokens := newMemoryActionTokenRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:        users,
		ActionTokenRepo: tokens,
	})
	return svc, users, tokens
}

func TestRegisterCreatesPendingIdentity(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.UserStatusPendingVerification, user.Status)
	assert.NotEqual(t, "Sup3rSecret", user.PasswordHash)

	verification := tokens.lastToken(repository.ActionTokenEmailVerification)
	require.NotNil(t, verification, "registration must prepare a verification token")
	assert.Equal(t, user.ID, verification.UserID)
	assert.True(t, verification.ExpiresAt.After(time.Now()))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ada", "ada@example.com", "An0therSecret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)

	user, accessToken, refreshToken, err := svc.Login(ctx, "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	claims, err := svc.Tokens().VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)

	_, _, _, wrongPassword := svc.Login(ctx, "ada@example.com", "wrong")
	_, _, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	_, _, refreshToken, err := svc.Login(ctx, "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)

	accessToken, err := svc.Refresh(ctx, refreshToken)
	require.NoError(t, err)

	claims, err := svc.Tokens().VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.Subject)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	_, accessToken, _, err := svc.Login(ctx, "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)

	// The token types are signed with different secrets.
	_, err = svc.Refresh(ctx, accessToken)
	assert.ErrorIs(t, err, auth.ErrTokenMalformed)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _, tokens := newTestAuthService()

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, tokens.lastToken(repository.ActionTokenPasswordReset))
}

func TestResetPasswordConsumesToken(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))

	reset := tokens.lastToken(repository.ActionTokenPasswordReset)
	require.NotNil(t, reset)

	require.NoError(t, svc.ResetPassword(ctx, reset.Token, "N3wPassword"))

	// Old credential rejected, new one accepted.
	_, _, _, err = svc.Login(ctx, "ada@example.com", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = svc.Login(ctx, "ada@example.com", "N3wPassword")
	assert.NoError(t, err)

	// Single use: a second redemption fails.
	err = svc.ResetPassword(ctx, reset.Token, "An0therPass")
	assert.ErrorIs(t, err, ErrInvalidActionToken)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))

	reset := tokens.lastToken(repository.ActionTokenPasswordReset)
	require.NotNil(t, reset)
	tokens.mu.Lock()
	tokens.tokens[reset.ID].ExpiresAt = time.Now().Add(-time.Minute)
	tokens.mu.Unlock()

	err = svc.ResetPassword(ctx, reset.Token, "N3wPassword")
	assert.ErrorIs(t, err, ErrInvalidActionToken)
}

func TestVerifyEmailActivatesIdentity(t *testing.T) {
	svc, users, tokens := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)

	verification := tokens.lastToken(repository.ActionTokenEmailVerification)
	require.NotNil(t, verification)

	require.NoError(t, svc.VerifyEmail(ctx, verification.Token))

	stored, err := users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, stored.Status)

	// Single use.
	err = svc.VerifyEmail(ctx, verification.Token)
	assert.ErrorIs(t, err, ErrInvalidActionToken)
}

func TestVerifyEmailRejectsUnknownToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	err := svc.VerifyEmail(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidActionToken)
}
