package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// RBAC lets through only callers whose token role is one of allowedRoles.
// Everyone else gets the same answer as a non-owner: not authorized.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
