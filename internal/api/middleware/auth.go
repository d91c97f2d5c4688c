package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

// ContextKeyAuth is the echo context key mirroring the request's AuthContext.
const ContextKeyAuth = "auth"

// IdentityResolver maps verified claims to the live identity of the caller.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, claims domain.TokenClaims) (domain.AuthContext, error)
}

// Authenticate requires "Authorization: Bearer <token>". Missing, malformed,
// invalid and expired tokens, and tokens whose user no longer exists, all
// produce the same 401.
func Authenticate(tokens ports.TokenVerifier, identities IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject("missing_token", nil)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return reject("invalid_token", err)
			}

			req := c.Request()
			ac, err := identities.ResolveIdentity(req.Context(), claims)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return reject("unknown_user", err)
				}
				return fmt.Errorf("resolve identity: %w", err)
			}

			c.SetRequest(req.WithContext(domain.WithAuthContext(req.Context(), ac)))
			c.Set(ContextKeyAuth, ac)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(reason string, internal error) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	he := echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	if internal != nil {
		he = he.SetInternal(internal)
	}
	return he
}
