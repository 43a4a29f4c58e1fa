package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/post-engagement-api/internal/auth"
	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/repository"
	"github.com/post-engagement-api/internal/validation"
)

// userService is the concrete implementation of UserService
type userService struct {
	*aggregate
	hasher    *auth.Hasher
	validator *validation.Validator
	log       zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(agg *aggregate, hasher *auth.Hasher, v *validation.Validator, log zerolog.Logger) *userService {
	return &userService{
		aggregate: agg,
		hasher:    hasher,
		validator: v,
		log:       log.With().Str("service", "user").Logger(),
	}
}

// List returns every account as a sanitized view
func (s *userService) List(ctx context.Context) ([]models.UserView, error) {
	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return lo.Map(users, func(u *models.User, _ int) models.UserView {
		return *models.NewUserView(u)
	}), nil
}

// Get returns one account
func (s *userService) Get(ctx context.Context, id string) (*models.UserView, error) {
	user, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewUserView(user), nil
}

// Update changes the acting user's own profile. The role cannot change.
func (s *userService) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.UserView, error) {
	if err := requireUserID(req.UserID); err != nil {
		return nil, err
	}
	if req.UserID != id {
		return nil, forbidden("You can only update your own account.")
	}

	user, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.ValidateUserUpdate(req); len(errs) > 0 {
		return nil, validationFailed("Nothing to update.", errs)
	}

	if req.Email != "" && req.Email != user.Email {
		exists, err := s.repos.User.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, errDuplicateEmail
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now()

	if err := s.repos.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	return models.NewUserView(user), nil
}

// Delete removes the acting user's own account. Their posts and comments stay
// and project with an unknown author.
func (s *userService) Delete(ctx context.Context, id, actingUserID string) (*models.DeletedView, error) {
	if err := requireUserID(actingUserID); err != nil {
		return nil, err
	}
	if actingUserID != id {
		return nil, forbidden("You can only delete your own account.")
	}

	deleted, err := s.repos.User.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if !deleted {
		return nil, ErrUserNotFound
	}

	s.log.Info().Str("user_id", id).Msg("User deleted")
	return &models.DeletedView{ID: id}, nil
}

// Count returns the number of accounts
func (s *userService) Count(ctx context.Context) (int, error) {
	return s.repos.User.Count(ctx)
}
