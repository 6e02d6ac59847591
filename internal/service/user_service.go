package service

import (
	"context"
	"errors"
	"strings"

	"turfbook/internal/auth"
	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates the account and, for turf owners that supplied turf
// details, their turf.
func (s *UserService) Register(ctx context.Context, input domain.RegisterInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RolePlayer
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(input.Phone),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if role == models.RoleTurfOwner && input.TurfName != "" && input.Location != "" && input.SportType != "" {
		turf := &models.Turf{
			Name:      input.TurfName,
			Location:  input.Location,
			SportType: input.SportType,
			OwnerID:   user.ID,
		}
		if err := s.repo.CreateTurf(ctx, turf); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", role).Msg("user registered")
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password return
// the same error so accounts are not enumerable.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, database.ErrUserNotFound) {
		return nil, database.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, database.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
