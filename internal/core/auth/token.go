package auth

import (
	"time"

	"github.com/openiam/iam-service/internal/core/domain"
)

// TokenIssuer mints bearer tokens for already-authenticated users. It trusts
// its caller: credential checks happen before Issue, never inside it.
type TokenIssuer struct {
	codec *ClaimsCodec
	now   func() time.Time
}

// NewTokenIssuer builds an issuer around codec. A nil clock defaults to
// time.Now; tests inject a fixed clock.
func NewTokenIssuer(codec *ClaimsCodec, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{codec: codec, now: now}
}

// Issue signs a token carrying the user's email, role, and full name.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	return i.codec.Encode(user.Email, user.Role, user.FullName, i.now().UTC())
}

// TokenVerifier validates bearer tokens. Every decode failure, whatever its
// internal classification, surfaces as domain.ErrUnauthenticated so callers
// cannot probe verification internals.
type TokenVerifier struct {
	codec *ClaimsCodec
	now   func() time.Time
}

// NewTokenVerifier builds a verifier around codec. A nil clock defaults to
// time.Now.
func NewTokenVerifier(codec *ClaimsCodec, now func() time.Time) *TokenVerifier {
	if now == nil {
		now = time.Now
	}
	return &TokenVerifier{codec: codec, now: now}
}

// Verify checks signature and expiry and returns the embedded claims.
func (v *TokenVerifier) Verify(token string) (*Claims, error) {
	claims, err := v.codec.Decode(token, v.now().UTC())
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
