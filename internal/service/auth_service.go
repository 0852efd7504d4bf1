package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/observability"
	apperrors "github.com/spec-kit/portfolio-backend/pkg/util/errorutil"
)

// LoginThrottle limits repeated failed logins per email.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// AuthService coordinates login and logout flows.
type AuthService struct {
	authenticator *auth.Authenticator
	tokens        *auth.Codec
	revoked       *auth.RevocationRegistry
	throttle      LoginThrottle
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// AuthDependencies bundles collaborators of the auth service.
type AuthDependencies struct {
	Authenticator *auth.Authenticator
	Tokens        *auth.Codec
	Revoked       *auth.RevocationRegistry
	Throttle      LoginThrottle
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		authenticator: deps.Authenticator,
		tokens:        deps.Tokens,
		revoked:       deps.Revoked,
		throttle:      deps.Throttle,
		metrics:       deps.Metrics,
		logger:        logger,
	}
}

// Login verifies credentials and mints an access token carrying the role.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.IssuedToken, error) {
	email = domain.NormalizeEmail(email)

	if s.throttle != nil && !s.throttle.Allow(ctx, email) {
		s.metrics.RecordAuth(observability.AuthLoginThrottled, 1)
		return nil, apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}

	principal, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if s.throttle != nil {
				s.throttle.RecordFailure(ctx, email)
			}
			s.metrics.RecordAuth(observability.AuthLoginFailed, 1)
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(principal.Subject, auth.Claims{Role: principal.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	expiresAt, err := s.tokens.ExpiryInstant(token)
	if err != nil {
		return nil, fmt.Errorf("read token expiry: %w", err)
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}
	s.metrics.RecordAuth(observability.AuthLoginSucceeded, 1)
	s.logger.Info("login succeeded", zap.String("user_id", principal.UserID))

	return &domain.IssuedToken{
		Token:     token,
		Subject:   principal.Subject,
		Role:      principal.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the token until its natural expiry. Missing, expired and
// unparsable tokens are rejected; logging out twice is harmless.
func (s *AuthService) Logout(_ context.Context, token string) error {
	if token == "" || s.tokens.IsExpired(token) {
		s.metrics.RecordAuth(observability.AuthLogoutRejected, 1)
		return apperrors.NewUnauthorized("missing or expired token")
	}
	expiresAt, err := s.tokens.ExpiryInstant(token)
	if err != nil {
		s.metrics.RecordAuth(observability.AuthLogoutRejected, 1)
		return apperrors.NewUnauthorized("missing or expired token")
	}
	s.revoked.Revoke(token, expiresAt)
	s.metrics.RecordAuth(observability.AuthLogout, 1)
	return nil
}
