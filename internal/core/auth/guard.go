package auth

import (
	"context"

	"github.com/openiam/iam-service/internal/core/domain"
	"github.com/openiam/iam-service/internal/core/ports"
)

// AccessGuard gates every protected operation: it resolves the acting user
// from a bearer token and enforces role requirements. The live User Store
// record is the final authority — an inactive or deleted account never passes,
// even holding a structurally valid, unexpired token.
type AccessGuard struct {
	verifier *TokenVerifier
	users    ports.UserRepository
}

// NewAccessGuard builds a guard around a verifier and the User Store.
func NewAccessGuard(verifier *TokenVerifier, users ports.UserRepository) *AccessGuard {
	return &AccessGuard{verifier: verifier, users: users}
}

// ResolveCurrentUser verifies token and loads the claimed user from the
// store. Verification failure, a missing record, and an inactive record all
// collapse to domain.ErrUnauthenticated.
func (g *AccessGuard) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := g.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// RequireRole passes iff the user's role is in the allowed set. There is no
// role hierarchy: admin gets no implicit access to role-specific operations
// unless the set names it.
func (g *AccessGuard) RequireRole(user *domain.User, allowed ...domain.Role) error {
	for _, r := range allowed {
		if user.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
