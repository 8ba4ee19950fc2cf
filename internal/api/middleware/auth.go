package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openiam/iam-service/internal/api/metrics"
	"github.com/openiam/iam-service/internal/core/auth"
	"github.com/openiam/iam-service/internal/core/domain"
)

// CurrentUserKey is the echo context key under which Auth stores the resolved
// user.
const CurrentUserKey = "current_user"

// Auth extracts the bearer token, resolves the acting user through the access
// guard, and injects it into the request context. A missing header, a bad
// token, and an absent or inactive account all produce the same 401.
func Auth(guard *auth.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				metrics.TokenResolutionsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthenticated
			}

			user, err := guard.ResolveCurrentUser(c.Request().Context(), token)
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("rejected").Inc()
				return err
			}

			metrics.TokenResolutionsTotal.WithLabelValues("authenticated").Inc()
			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], auth.TokenType) {
		return "", false
	}
	return parts[1], true
}
