package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/domain"
)

// Authorize lets the request through only when the authenticated role is one
// of roles. It must run after Authenticate; without an identity it answers 401.
func Authorize(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac, ok := domain.AuthContextFrom(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if _, ok := allowed[ac.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
