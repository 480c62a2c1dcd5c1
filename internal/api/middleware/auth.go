package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// PrincipalKey is the context key under which Auth stores the resolved user.
const PrincipalKey = "principal"

// PrincipalResolver maps a raw bearer token to an active user. Implemented by
// the auth service; identity resolution (401 territory) happens here, role
// gating (403 territory) is layered strictly after it by RequireRole.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token, resolves it to a principal and stores the
// user in the request context. Missing or malformed Authorization headers and
// every resolution failure reject the request with the matching 401 variant.
func Auth(resolver PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			user, err := resolver.ResolvePrincipal(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(PrincipalKey, user)
			return next(c)
		}
	}
}

// AuthOptional resolves a principal when a valid bearer token is present and
// proceeds anonymously otherwise. No failure on this path is an error: absent,
// malformed and invalid tokens all mean "no principal".
func AuthOptional(resolver PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err == nil {
				if user, rerr := resolver.ResolvePrincipal(c.Request().Context(), token); rerr == nil {
					c.Set(PrincipalKey, user)
				}
			}
			return next(c)
		}
	}
}

// Principal returns the user resolved by Auth, or nil when the request is
// anonymous (AuthOptional path or no auth middleware on the route).
func Principal(c echo.Context) *domain.User {
	user, _ := c.Get(PrincipalKey).(*domain.User)
	return user
}

// bearerToken extracts the token from the Authorization header, keeping the
// missing and malformed cases distinguishable in the error detail.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", domain.ErrTokenInvalid.WithDetail("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrTokenInvalid.WithDetail("invalid authorization header")
	}
	return parts[1], nil
}
