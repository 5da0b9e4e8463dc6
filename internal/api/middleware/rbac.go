package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classpoint/horarios-api/internal/core/domain"
)

// RequireRole gates a route on the role claim set by Auth. The response is a
// uniform 403 that reveals nothing about the resource behind the route.
func RequireRole(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			caller := domain.Identity{Role: role}
			if err := caller.RequireRole(required); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
