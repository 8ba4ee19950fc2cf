package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/openiam/iam-service/internal/api/metrics"
	"github.com/openiam/iam-service/internal/core/auth"
	"github.com/openiam/iam-service/internal/core/domain"
)

// RequireRole enforces role-based access control on routes already behind
// Auth. The allowed set is explicit: admin is not implicitly included.
func RequireRole(guard *auth.AccessGuard, allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(CurrentUserKey).(*domain.User)
			if !ok {
				return domain.ErrUnauthenticated
			}

			if err := guard.RequireRole(user, allowed...); err != nil {
				metrics.RoleChecksTotal.WithLabelValues("forbidden").Inc()
				return err
			}

			metrics.RoleChecksTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}
