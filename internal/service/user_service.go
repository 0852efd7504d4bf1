package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/repository"
	apperrors "github.com/spec-kit/portfolio-backend/pkg/util/errorutil"
)

// UserService administers accounts.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserInput describes a new account.
type UserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	return s.users.ListByRole(ctx, parsed)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, notFound(err, "user", "email", email)
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFound(err, "user", "username", username)
	}
	return user, nil
}

func (s *UserService) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.User, error) {
	return s.users.ListCreatedAfter(ctx, after)
}

// Roles returns the fixed role catalogue. Roles are not stored, so the
// listing is read-only.
func (s *UserService) Roles() []domain.Role {
	return domain.Roles()
}

// Role looks up a single role by name.
func (s *UserService) Role(name string) (domain.Role, error) {
	role, ok := domain.ParseRole(name)
	if !ok {
		return "", apperrors.NewNotFound("role", map[string]any{"name": name})
	}
	return role, nil
}

// Create stores a new account with a hashed password. The email is
// lowercased and the role defaults to USER.
func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	user, err := s.newUser(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the account, or resets the password and promotes it to
// ADMIN when the email already exists. The boolean reports creation.
func (s *UserService) EnsureAdmin(ctx context.Context, input UserInput) (*domain.User, bool, error) {
	input.Role = string(domain.RoleAdmin)
	fresh, err := s.newUser(input)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.users.GetByEmail(ctx, fresh.Email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if err := s.users.Create(ctx, fresh); err != nil {
			return nil, false, err
		}
		return fresh, true, nil
	case err != nil:
		return nil, false, err
	}

	existing.PasswordHash = fresh.PasswordHash
	existing.Role = domain.RoleAdmin
	if strings.TrimSpace(input.Username) != "" {
		existing.Username = fresh.Username
	}
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return notFound(s.users.Delete(ctx, id), "user", "id", id)
}

func (s *UserService) newUser(input UserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}

	role := domain.RoleUser
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
		}
		role = parsed
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	return &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, nil
}
