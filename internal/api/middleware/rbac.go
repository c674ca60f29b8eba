package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// OwnerOrAdmin lets admins through and restricts everyone else to the team
// whose owner key matches their own username. param names the path parameter
// holding the owner.
func OwnerOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == domain.RoleAdmin {
				return next(c)
			}

			username, _ := c.Get(CtxUsername).(string)
			self, err := domain.OwnerKey(username)
			if err != nil {
				return domain.ErrForbidden
			}
			target, err := domain.OwnerKey(c.Param(param))
			if err != nil {
				return err
			}
			if self != target {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
