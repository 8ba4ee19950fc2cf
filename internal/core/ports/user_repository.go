package ports

import (
	"context"

	"github.com/openiam/iam-service/internal/core/domain"
)

// UserRepository is the contract with the external User Store. Implementations
// map their own duplicate-key and missing-document conditions to
// domain.ErrDuplicateEmail and domain.ErrUserNotFound.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Insert persists a new user and returns it with its assigned id.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	// List returns users in id order. The sequence is finite and not
	// restartable; callers page with skip/limit.
	List(ctx context.Context, skip, limit int64) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
