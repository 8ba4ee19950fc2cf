// Package seed inserts one demo account per role so a fresh deployment can be
// exercised immediately. Seeding is skipped when the store already holds any
// user, so it never fights a live database.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openiam/iam-service/internal/core/auth"
	"github.com/openiam/iam-service/internal/core/domain"
	"github.com/openiam/iam-service/internal/core/ports"
)

type demoUser struct {
	email    string
	password string
	fullName string
	role     domain.Role
}

var demoUsers = []demoUser{
	{"admin@example.com", "Admin@123", "Admin User", domain.RoleAdmin},
	{"legal@example.com", "Legal@123", "Legal User", domain.RoleLegal},
	{"pm@example.com", "PM@123", "Project Manager", domain.RolePM},
	{"sales@example.com", "Sales@123", "Sales User", domain.RoleSales},
	{"user@example.com", "User@123", "Regular User", domain.RoleUser},
}

// Run seeds the demo users if the store is empty.
func Run(ctx context.Context, repo ports.UserRepository, hasher *auth.PasswordHasher, log zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if count > 0 {
		log.Debug().Int64("users", count).Msg("store already seeded")
		return nil
	}

	for _, du := range demoUsers {
		hash, err := hasher.Hash(du.password)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", du.email, err)
		}
		if _, err := repo.Insert(ctx, &domain.User{
			Email:        du.email,
			FullName:     du.fullName,
			PasswordHash: hash,
			Role:         du.role,
			IsActive:     true,
		}); err != nil {
			return fmt.Errorf("seed: insert %s: %w", du.email, err)
		}
		log.Info().Str("email", du.email).Str("role", du.role.String()).Msg("demo user created")
	}
	return nil
}
