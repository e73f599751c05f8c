package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlaunchpad/api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfilePatchesOnlyGivenFields(t *testing.T) {
	users := newMemoryUserRepo()
	svc := NewUserService(users)
	ctx := context.Background()

	seed := &domain.User{
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		Headline:     "Engineer",
	}
	require.NoError(t, users.Create(ctx, seed))

	updated, err := svc.UpdateProfile(ctx, seed.ID, ProfilePatch{
		Bio:      strPtr("Building things."),
		Location: strPtr("London"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "Engineer", updated.Headline)
	assert.Equal(t, "Building things.", updated.Bio)
	assert.Equal(t, "London", updated.Location)
	// Credentials are never touched by a profile patch.
	assert.Equal(t, "hash", updated.PasswordHash)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newMemoryUserRepo())
	_, err := svc.UpdateProfile(context.Background(), "missing", ProfilePatch{Name: strPtr("X")})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestGetProfile(t *testing.T) {
	users := newMemoryUserRepo()
	svc := NewUserService(users)
	ctx := context.Background()

	seed := &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, seed))

	got, err := svc.GetProfile(ctx, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
}
