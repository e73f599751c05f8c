package service

import (
	"context"

	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/repository"
)

// ProfilePatch carries optional profile fields; nil means untouched.
type ProfilePatch struct {
	Name     *string
	Headline *string
	Bio      *string
	Location *string
}

// UserService serves profile reads and updates.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile fetches the fresh identity record.
func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a shallow patch without touching credentials.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Headline != nil {
		user.Headline = *patch.Headline
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
