package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openiam/iam-service/internal/api/middleware"
	"github.com/openiam/iam-service/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its absence
// means the route was wired without the middleware; fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CurrentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
