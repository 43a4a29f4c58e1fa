package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/auth"
	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/repository"
	"github.com/post-engagement-api/internal/validation"
)

// authService is the concrete implementation of AuthService
type authService struct {
	*aggregate
	hasher    *auth.Hasher
	tokens    *auth.Tokens
	validator *validation.Validator
	log       zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(agg *aggregate, hasher *auth.Hasher, tokens *auth.Tokens, v *validation.Validator, log zerolog.Logger) *authService {
	return &authService{
		aggregate: agg,
		hasher:    hasher,
		tokens:    tokens,
		validator: v,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account with the given role and signs a session token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest, role models.Role) (*models.AuthView, error) {
	if errs := s.validator.ValidateRegistration(req); len(errs) > 0 {
		return nil, validationFailed("Name, email, and password are required.", errs)
	}

	exists, err := s.repos.User.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errDuplicateEmail
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:           s.newID(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(role)).
		Msg("User registered")

	return s.session(user)
}

// Login checks credentials and signs a session token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthView, error) {
	if errs := s.validator.ValidateLogin(req); len(errs) > 0 {
		return nil, validationFailed("Email and password are required.", errs)
	}

	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("User logged in")

	return s.session(user)
}

// Authenticate verifies a bearer token
func (s *authService) Authenticate(raw string) (*auth.Session, error) {
	session, err := s.tokens.Verify(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("Rejected session token")
		return nil, &Error{Kind: KindUnauthenticated, Message: "Invalid or expired session token."}
	}
	return session, nil
}

func (s *authService) session(user *models.User) (*models.AuthView, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthView{UserView: *models.NewUserView(user), Token: token}, nil
}

// validationFailed keeps the familiar message when fields are simply missing and
// otherwise lists what is wrong
func validationFailed(missing string, errs []validation.ValidationError) *Error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if strings.HasSuffix(e.Message, "is required") {
			return invalid(missing, errs...)
		}
		messages = append(messages, e.Message)
	}
	return invalid(strings.Join(messages, "; ")+".", errs...)
}
