package dto

import (
	"time"

	"github.com/careerlaunchpad/api/internal/domain"
)

// ProfileUpdateRequest carries optional profile fields; absent fields stay
// untouched.
type ProfileUpdateRequest struct {
	Name     *string `json:"name"`
	Headline *string `json:"headline"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
}

// Validate rejects explicit empty names; everything else is free-form.
func (r ProfileUpdateRequest) Validate() map[string]any {
	if r.Name != nil && *r.Name == "" {
		return map[string]any{"name": "name must not be empty"}
	}
	return nil
}

// ProfileResponse is the full profile projection.
type ProfileResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	Headline  string            `json:"headline,omitempty"`
	Bio       string            `json:"bio,omitempty"`
	Location  string            `json:"location,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewProfileResponse projects a domain user.
func NewProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Status:    user.Status,
		Headline:  user.Headline,
		Bio:       user.Bio,
		Location:  user.Location,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
