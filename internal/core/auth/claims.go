package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openiam/iam-service/internal/core/domain"
)

// TokenType is the type tag returned alongside every issued token.
const TokenType = "bearer"

// DefaultTokenLifetime bounds token validity when no lifetime is configured.
const DefaultTokenLifetime = 30 * time.Minute

// Decode failure classification. These distinctions exist for logging and
// tests only; the verifier collapses all of them before they reach a caller.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims is the only claims shape this service signs or accepts. Subject
// carries the user's email; Role and FullName are copied from the user record
// at issuance and are never re-trusted over the live store.
type Claims struct {
	jwt.RegisteredClaims

	Role     domain.Role `json:"role"`
	FullName string      `json:"full_name"`
}

// ClaimsCodec signs and parses claims with an HS256 secret fixed at process
// start. Encode and Decode are pure functions of their inputs; the codec
// holds no mutable state and is safe for unlimited concurrent use.
type ClaimsCodec struct {
	secret   []byte
	lifetime time.Duration
}

// NewClaimsCodec builds a codec for the given signing secret. A non-positive
// lifetime falls back to DefaultTokenLifetime.
func NewClaimsCodec(secret string, lifetime time.Duration) *ClaimsCodec {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &ClaimsCodec{secret: []byte(secret), lifetime: lifetime}
}

// Lifetime returns the configured token lifetime.
func (c *ClaimsCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Encode serializes and signs claims for the given identity, expiring at
// now + lifetime.
func (c *ClaimsCodec) Encode(email string, role domain.Role, fullName string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Role:     role,
		FullName: fullName,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry of token relative to now and
// returns its claims. Failures are classified as ErrMalformedToken,
// ErrBadSignature, or ErrTokenExpired.
func (c *ClaimsCodec) Decode(token string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil {
		return nil, classifyDecodeError(err)
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	default:
		return ErrMalformedToken
	}
}
