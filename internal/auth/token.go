package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// MinSecretLength is the HS256 key size in bytes.
const MinSecretLength = 32

var (
	ErrBadConfiguration = errors.New("auth: bad token configuration")
	ErrMalformedToken   = errors.New("auth: malformed token")
)

// Claims holds the custom, non-registered claims embedded in a token.
type Claims struct {
	Role domain.Role `json:"role,omitempty"`
}

type tokenClaims struct {
	Claims
	jwt.RegisteredClaims
}

// Codec issues and parses HS256 access tokens. It is immutable after
// construction and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
	parser *jwt.Parser
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithCodecClock overrides the time source used for issuance and expiry.
func WithCodecClock(clock Clock) CodecOption {
	return func(c *Codec) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewCodec builds a codec. The secret must be at least MinSecretLength bytes
// and the TTL positive.
func NewCodec(secret string, ttl time.Duration, opts ...CodecOption) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: secret must be at least %d bytes", ErrBadConfiguration, MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive", ErrBadConfiguration)
	}

	c := &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  SystemClock(),
		// Expiry is checked by the codec itself against its clock.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject carrying claims.
func (c *Codec) Issue(subject string, claims Claims) (string, error) {
	now := c.clock.Now()
	payload := &tokenClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiryAfter(now, c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// expiryAfter rounds now+ttl up to the next whole second. NumericDate drops
// sub-second precision, and truncating would let a short-lived token expire
// before it is ever used.
func expiryAfter(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if whole := exp.Truncate(time.Second); whole.Before(exp) {
		return whole.Add(time.Second)
	}
	return exp
}

// SubjectOf returns the token's subject once its signature checks out.
func (c *Codec) SubjectOf(token string) (string, error) {
	claims, err := c.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ClaimsOf returns the custom claims of a verified token.
func (c *Codec) ClaimsOf(token string) (Claims, error) {
	claims, err := c.parse(token)
	if err != nil {
		return Claims{}, err
	}
	return claims.Claims, nil
}

// ExpiryInstant returns the token's expiry.
func (c *Codec) ExpiryInstant(token string) (time.Time, error) {
	claims, err := c.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp", ErrMalformedToken)
	}
	return claims.ExpiresAt.Time.UTC(), nil
}

// IsExpired reports whether now is at or past the token's expiry. Tokens that
// cannot be verified are treated as expired.
func (c *Codec) IsExpired(token string) bool {
	claims, err := c.parse(token)
	if err != nil {
		return true
	}
	return c.expired(claims)
}

// IsValid reports whether the token verifies, belongs to expectedSubject
// (exact match) and has not expired. It never distinguishes the reason.
func (c *Codec) IsValid(token, expectedSubject string) bool {
	claims, err := c.parse(token)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject && !c.expired(claims)
}

func (c *Codec) expired(claims *tokenClaims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !c.clock.Now().Before(claims.ExpiresAt.Time)
}

func (c *Codec) parse(token string) (*tokenClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims := &tokenClaims{}
	parsed, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
