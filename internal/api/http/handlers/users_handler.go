package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/careerlaunchpad/api/internal/api/dto"
	"github.com/careerlaunchpad/api/internal/auth"
	"github.com/careerlaunchpad/api/internal/service"
	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

// UsersHandler exposes the authenticated profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// GetProfile handles GET /users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	user, err := h.users.GetProfile(c.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewProfileResponse(user),
	})
}

// UpdateProfile handles PUT /users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if errs := req.Validate(); errs != nil {
		return apperrors.NewValidationError("Validation failed", errs)
	}

	user, err := h.users.UpdateProfile(c.Context(), identity.ID, service.ProfilePatch{
		Name:     req.Name,
		Headline: req.Headline,
		Bio:      req.Bio,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"data":    dto.NewProfileResponse(user),
	})
}
