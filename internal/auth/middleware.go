package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const principalKey = "auth_principal"

// PrincipalLoader re-hydrates a principal from a token subject.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, subject string) (*Principal, error)
}

// AuthMiddleware attaches the caller's principal when a usable bearer token
// is presented. It never rejects a request; role guards do that downstream.
type AuthMiddleware struct {
	tokens     *Codec
	revoked    *RevocationRegistry
	principals PrincipalLoader
	logger     *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *Codec, revoked *RevocationRegistry, principals PrincipalLoader, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, revoked: revoked, principals: principals, logger: logger}
}

// Handle resolves the request identity and always continues the chain.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	token, ok := BearerToken(c)
	if !ok {
		return c.Next()
	}

	if m.revoked.IsRevoked(token) {
		m.logger.Debug("revoked token presented", zap.String("path", c.Path()))
		return c.Next()
	}

	subject, err := m.tokens.SubjectOf(token)
	if err != nil {
		m.logger.Warn("unable to extract token subject", zap.String("path", c.Path()), zap.Error(err))
		return c.Next()
	}

	if !m.tokens.IsValid(token, subject) {
		m.logger.Warn("invalid token", zap.String("subject", subject), zap.String("path", c.Path()))
		return c.Next()
	}

	principal, err := m.principals.LoadPrincipal(c.UserContext(), subject)
	if err != nil {
		m.logger.Warn("unable to load principal", zap.String("subject", subject), zap.Error(err))
		return c.Next()
	}

	c.Locals(principalKey, principal)
	m.logger.Debug("request authenticated", zap.String("subject", principal.Subject), zap.String("role", string(principal.Role)))
	return c.Next()
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}
