package service

import (
	"context"
	"testing"

	"turfbook/internal/auth"
	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	repo := setupRepo(t)
	svc := NewUserService(repo, testLogger())

	user, err := svc.Register(context.Background(), domain.RegisterInput{
		Name:     "  Alex  ",
		Email:    " Alex@Example.COM ",
		Password: "secret123",
		Phone:    "+1000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alex", user.Name)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.Equal(t, models.RolePlayer, user.Role, "role defaults to player")
	assert.True(t, auth.CheckPassword(user.PasswordHash, "secret123"))
}

func TestUserService_Register_TurfOwnerCreatesTurf(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	svc := NewUserService(repo, testLogger())

	user, err := svc.Register(ctx, domain.RegisterInput{
		Name:      "Owner",
		Email:     "owner@example.com",
		Password:  "secret123",
		Role:      models.RoleTurfOwner,
		TurfName:  "Green Arena",
		Location:  "Bangalore",
		SportType: "football",
	})
	require.NoError(t, err)

	turf, err := repo.GetTurfByOwner(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Arena", turf.Name)
	assert.Equal(t, "football", turf.SportType)
}

func TestUserService_Register_TurfOwnerWithoutTurfDetails(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	svc := NewUserService(repo, testLogger())

	user, err := svc.Register(ctx, domain.RegisterInput{
		Name:     "Owner",
		Email:    "owner@example.com",
		Password: "secret123",
		Role:     models.RoleTurfOwner,
	})
	require.NoError(t, err)

	_, err = repo.GetTurfByOwner(ctx, user.ID)
	assert.ErrorIs(t, err, database.ErrTurfNotFound)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	svc := NewUserService(repo, testLogger())

	input := domain.RegisterInput{Name: "Alex", Email: "alex@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, database.ErrEmailTaken)
}

func TestUserService_Login(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	svc := NewUserService(repo, testLogger())

	_, err := svc.Register(ctx, domain.RegisterInput{Name: "Alex", Email: "alex@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := svc.Login(ctx, "ALEX@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)

	_, err = svc.Login(ctx, "alex@example.com", "wrong")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)

	// Unknown email maps to the same error as a wrong password.
	_, err = svc.Login(ctx, "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)
}
