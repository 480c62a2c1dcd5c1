package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// RequireRole enforces role-based access control on a route. It must be
// layered after Auth: a request that never resolved a principal is rejected
// as unauthorized (401), never forbidden (403).
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Principal(c)
			if user == nil {
				return domain.ErrTokenInvalid.WithDetail("missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrInsufficientRole.WithDetail(fmt.Sprintf(
					"role %q is not permitted to access this resource, required one of %v",
					user.Role, allowedRoles,
				))
			}
			return next(c)
		}
	}
}
