package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "lead-crm-service/internal/domain/user"
	pkgerrors "lead-crm-service/pkg/errors"
	"lead-crm-service/pkg/security"
	"lead-crm-service/pkg/token"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// GetByEmail and GetByID return (nil, nil) when no user matches, so callers
// can distinguish absence from a storage failure.
type Repository interface {
	// Create inserts a new user and returns its assigned ID.
	Create(ctx context.Context, u *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Service implements registration and login on top of the user repository,
// the password hasher, and the token issuer.
type Service struct {
	repo     Repository
	tokens   *token.Manager
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new auth Service.
func New(r Repository, tokens *token.Manager, log *zap.Logger) *Service {
	return &Service{repo: r, tokens: tokens, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a client-facing error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// normalizeEmail lowercases and trims an email for the case-insensitive
// uniqueness check.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user after validating the request and checking email
// uniqueness. The stored password is a bcrypt hash; the response excludes it.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.PhoneNo = strings.TrimSpace(in.PhoneNo)

	if in.Name == "" || in.Email == "" || in.Password == "" || in.PhoneNo == "" {
		s.log.Warn("register validation failed", zap.String("reason", "missing fields"))
		return nil, pkgerrors.NewValidationError("", "All fields are required")
	}

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("register validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, pkgerrors.NewConflictError("user", "User already exists")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to hash password", err)
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		PhoneNo:  in.PhoneNo,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create user", err)
	}

	s.log.Info("user registered", zap.String("id", id), zap.String("email", in.Email))

	return &RegisterResponse{
		ID:    id,
		Name:  in.Name,
		Email: in.Email,
	}, nil
}

// Login verifies credentials and issues a signed token bound to the user's ID.
// An unknown email and a wrong password produce the identical error so the
// response never reveals which check failed.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	in.Email = normalizeEmail(in.Email)

	if in.Email == "" || in.Password == "" {
		s.log.Warn("login validation failed", zap.String("reason", "missing fields"))
		return nil, pkgerrors.NewValidationError("", "Email and password are required")
	}

	usr, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to look up user", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to look up user", err)
	}
	if usr == nil || !security.VerifyPassword(usr.Password, in.Password) {
		s.log.Warn("invalid credentials", zap.String("email", in.Email))
		return nil, pkgerrors.NewInvalidCredentialsError()
	}

	signed, err := s.tokens.Issue(usr.ID)
	if err != nil {
		s.log.Error("failed to issue token", zap.String("id", usr.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to issue token", err)
	}

	s.log.Info("user logged in", zap.String("id", usr.ID))

	return &LoginResponse{
		Token: signed,
		User: Profile{
			ID:      usr.ID,
			Name:    usr.Name,
			Email:   usr.Email,
			PhoneNo: usr.PhoneNo,
		},
	}, nil
}
