package dto

import (
	"time"

	"github.com/careerlaunchpad/api/internal/domain"
)

// RegisterRequest payload for new identities.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields.
func (r RegisterRequest) Validate() map[string]any {
	errs := map[string]any{}
	if r.Name == "" {
		errs["name"] = "name is required"
	}
	if !validEmail(r.Email) {
		errs["email"] = "valid email is required"
	}
	if msg := passwordPolicy(r.Password); msg != "" {
		errs["password"] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate checks the email shape before any lookup happens.
func (r ForgotPasswordRequest) Validate() map[string]any {
	if !validEmail(r.Email) {
		return map[string]any{"email": "valid email is required"}
	}
	return nil
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate checks the replacement password against the registration policy.
func (r ResetPasswordRequest) Validate() map[string]any {
	errs := map[string]any{}
	if r.Token == "" {
		errs["token"] = "reset token is required"
	}
	if msg := passwordPolicy(r.Password); msg != "" {
		errs["password"] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UserResponse is the public identity projection; the credential hash is
// never serialized.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewUserResponse projects a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// LoginData bundles the identity projection with the token pair.
type LoginData struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}
