package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careerlaunchpad/api/internal/api/dto"
	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/service"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// Acknowledgment for forgot-password is identical whether or not the email
// exists, so account existence cannot be probed.
const forgotPasswordAck = "If an account exists, a password reset email has been sent"

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if errs := req.Validate(); errs != nil {
		return apperrors.NewValidationError("Validation failed", errs)
	}

	user, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return apperrors.NewDomainError("CONFLICT", "User already exists", http.StatusBadRequest, nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully. Please check your email to verify your account.",
		"data":    dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, accessToken, refreshToken, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": dto.LoginData{
			User:         dto.NewUserResponse(user),
			Token:        accessToken,
			RefreshToken: refreshToken,
		},
	})
}

// Refresh handles POST /auth/refresh-token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.RefreshToken == "" {
		return apperrors.NewBadRequest("refresh token required")
	}

	accessToken, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return apperrors.NewUnauthorized("token expired")
		case errors.Is(err, auth.ErrTokenMalformed):
			return apperrors.NewUnauthorized("invalid token")
		default:
			return apperrors.MapError(err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"token": accessToken},
	})
}

// Logout handles POST /auth/logout. Invalidation is a client-side discard;
// the endpoint exists for consistency.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context()); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if errs := req.Validate(); errs != nil {
		return apperrors.NewValidationError("Validation failed", errs)
	}

	if err := h.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": forgotPasswordAck,
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if errs := req.Validate(); errs != nil {
		return apperrors.NewValidationError("Validation failed", errs)
	}

	if err := h.auth.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidActionToken) {
			return apperrors.NewBadRequest(err.Error())
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset successful",
	})
}

// VerifyEmail handles GET /auth/verify-email/:token.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return apperrors.NewValidationError("verification token required", nil)
	}

	if err := h.auth.VerifyEmail(c.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidActionToken) {
			return apperrors.NewBadRequest(err.Error())
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email verified successfully",
	})
}
