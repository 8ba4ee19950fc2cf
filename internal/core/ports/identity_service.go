package ports

import (
	"context"

	"github.com/openiam/iam-service/internal/core/domain"
)

// RegisterInput carries the fields for self-registration and admin-create.
// Role is already parsed; handlers map an absent role to domain.RoleUser.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     domain.Role
}

// UpdateProfileInput is a self-service profile edit. Nil pointers mean "leave
// unchanged"; absence is explicit in the type, never inferred.
type UpdateProfileInput struct {
	Email    *string
	FullName *string
}

// UpdateRoleInput is an admin role reassignment. A nil Role means no change
// was requested.
type UpdateRoleInput struct {
	Role *domain.Role
}

// IdentityService exposes the surface behavior of the identity core,
// abstracted from transport.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token for valid credentials and
	// domain.ErrInvalidCredentials otherwise, uniformly for unknown emails
	// and bad passwords.
	Login(ctx context.Context, email, password string) (string, error)
	UpdateProfile(ctx context.Context, user *domain.User, in UpdateProfileInput) (*domain.User, error)
	// ChangePassword requires re-proof of the current plaintext password, a
	// stronger check than token possession.
	ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error

	// Admin-only operations; callers gate them with the access guard.
	ListUsers(ctx context.Context, skip, limit int64) ([]domain.User, error)
	CreateUser(ctx context.Context, in RegisterInput) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id int64, in UpdateRoleInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
