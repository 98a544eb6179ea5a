package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unmatched/taskboard/internal/core/domain"
)

// RequireRole gates a route on the actor's role. This is the coarse route
// gate only; relation-sensitive rules (assignee-or-admin) live in the
// permission evaluator and run again inside the service.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
