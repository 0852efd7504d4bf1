package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// CredentialStore looks up credential records by normalized email.
// A missing record is reported as pgx.ErrNoRows.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID  string
	Subject string
	Role    domain.Role
}

// HasRole reports whether the principal holds one of roles.
func (p *Principal) HasRole(roles ...domain.Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// PrincipalFromUser builds the principal view over a credential record.
func PrincipalFromUser(user *domain.User) *Principal {
	return &Principal{
		UserID:  user.ID,
		Subject: domain.NormalizeEmail(user.Email),
		Role:    user.Role,
	}
}

// Authenticator verifies email/password pairs against a CredentialStore.
type Authenticator struct {
	store CredentialStore
}

// NewAuthenticator constructs an authenticator.
func NewAuthenticator(store CredentialStore) *Authenticator {
	return &Authenticator{store: store}
}

// Authenticate returns the principal for a matching credential pair. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	user, err := a.store.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			burnComparison(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup credentials: %w", err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return PrincipalFromUser(user), nil
}

// LoadPrincipal re-hydrates the principal for a token subject.
func (a *Authenticator) LoadPrincipal(ctx context.Context, subject string) (*Principal, error) {
	user, err := a.store.GetByEmail(ctx, domain.NormalizeEmail(subject))
	if err != nil {
		return nil, err
	}
	return PrincipalFromUser(user), nil
}
