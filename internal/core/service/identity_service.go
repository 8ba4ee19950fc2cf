package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/openiam/iam-service/internal/core/auth"
	"github.com/openiam/iam-service/internal/core/domain"
	"github.com/openiam/iam-service/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt store (Redis). A nil throttle
// disables throttling entirely.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type identityService struct {
	repo     ports.UserRepository
	hasher   *auth.PasswordHasher
	issuer   *auth.TokenIssuer
	throttle LoginThrottle
	log      zerolog.Logger
}

// NewIdentityService returns an IdentityService implementation backed by the
// given User Store, hasher, and token issuer.
func NewIdentityService(
	repo ports.UserRepository,
	hasher *auth.PasswordHasher,
	issuer *auth.TokenIssuer,
	throttle LoginThrottle,
	log zerolog.Logger,
) ports.IdentityService {
	return &identityService{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		throttle: throttle,
		log:      log,
	}
}

// Register creates a new account. The repository surfaces
// domain.ErrDuplicateEmail for an already-registered address.
func (s *identityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// Login authenticates credentials and issues a bearer token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *identityService) Login(ctx context.Context, email, password string) (string, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("email", user.Email).Msg("login succeeded")
	return token, nil
}

func (s *identityService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// UpdateProfile applies a self-service edit to the resolved user only.
func (s *identityService) UpdateProfile(ctx context.Context, user *domain.User, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the stored hash only after the current plaintext
// password re-verifies. A wrong current password leaves the hash untouched.
func (s *identityService) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error {
	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("email", user.Email).Msg("password changed")
	return nil
}

func (s *identityService) ListUsers(ctx context.Context, skip, limit int64) ([]domain.User, error) {
	return s.repo.List(ctx, skip, limit)
}

// CreateUser is the admin variant of Register; same semantics, gated by the
// caller.
func (s *identityService) CreateUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.Register(ctx, in)
}

// UpdateUserRole reassigns a user's role by id. A nil role in the input means
// no change was requested; the user is returned as-is.
func (s *identityService) UpdateUserRole(ctx context.Context, id int64, in ports.UpdateRoleInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role == nil {
		return user, nil
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user.Role = *in.Role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Str("role", user.Role.String()).Msg("role updated")
	return user, nil
}

func (s *identityService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
