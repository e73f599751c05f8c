package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/config"
	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/events"
	"github.com/careerlaunchpad/api/internal/repository"
)

// Auth flow failures. Login reports the same error for unknown emails and
// wrong passwords so account existence cannot be probed.
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidActionToken = errors.New("token invalid, expired or already used")
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

// AuthService coordinates the session lifecycle: registration, login,
// refresh, and the verification/reset token flows.
type AuthService struct {
	users        repository.UserRepository
	actionTokens repository.ActionTokenRepository
	tokens       *auth.TokenService
	dispatcher   events.Dispatcher
	bcryptCost   int
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	ActionTokenRepo repository.ActionTokenRepository
	Dispatcher      events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		actionTokens: deps.ActionTokenRepo,
		tokens: auth.NewTokenService(
			cfg.Auth.AccessSecret,
			cfg.Auth.RefreshSecret,
			cfg.Auth.AccessTokenTTL(),
			cfg.Auth.RefreshTokenTTL(),
		),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new identity in the unverified state and prepares an
// email verification token. The returned user never carries the plaintext
// password; the caller must project away the hash.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusPendingVerification,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token := &repository.ActionToken{
		UserID:    user.ID,
		Kind:      repository.ActionTokenEmailVerification,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := s.actionTokens.Create(ctx, token); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:             user.Email,
		Name:              user.Name,
		VerificationToken: token.Token,
	})
	return user, nil
}

// Login authenticates an identity and issues the access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, _, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Refresh exchanges a valid refresh token for a new access token bound to
// the same identity. The refresh token is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	identityID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", auth.ErrTokenMalformed
		}
		return "", err
	}

	accessToken, _, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

// Logout is a stateless acknowledgment; invalidation happens client-side by
// discarding stored tokens.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// ForgotPassword prepares a reset token when the email exists. It never
// reports whether the account exists; the handler returns the same generic
// acknowledgment either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	token := &repository.ActionToken{
		UserID:    user.ID,
		Kind:      repository.ActionTokenPasswordReset,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.actionTokens.Create(ctx, token); err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		Email:      user.Email,
		ResetToken: token.Token,
		ExpiresAt:  token.ExpiresAt,
	})
	return nil
}

// ResetPassword consumes a single-use reset token and stores the new hash.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.consumableToken(ctx, repository.ActionTokenPasswordReset, tokenStr)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.actionTokens.MarkUsed(ctx, token.ID)
}

// VerifyEmail consumes a single-use verification token and activates the
// identity.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenStr string) error {
	token, err := s.consumableToken(ctx, repository.ActionTokenEmailVerification, tokenStr)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.Status = domain.UserStatusActive
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.actionTokens.MarkUsed(ctx, token.ID); err != nil {
		return err
	}

	s.publish(ctx, events.EventEmailVerified, user.ID, events.EmailVerifiedPayload{Email: user.Email})
	return nil
}

// Tokens exposes the underlying token service for middleware usage.
func (s *AuthService) Tokens() *auth.TokenService {
	return s.tokens
}

func (s *AuthService) consumableToken(ctx context.Context, kind repository.ActionTokenKind, tokenStr string) (*repository.ActionToken, error) {
	token, err := s.actionTokens.GetByToken(ctx, kind, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidActionToken
		}
		return nil, err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidActionToken
	}
	return token, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
