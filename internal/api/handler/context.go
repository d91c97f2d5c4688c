package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// actor returns the identity attached by the Authenticate middleware. A
// missing identity means the route was wired without it.
func actor(c echo.Context) (domain.AuthContext, error) {
	ac, ok := domain.AuthContextFrom(c.Request().Context())
	if !ok || ac.UserID == "" {
		return domain.AuthContext{}, domain.ErrUnauthenticated
	}
	return ac, nil
}
