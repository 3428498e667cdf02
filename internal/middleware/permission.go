package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
)

// RequirePermission returns a middleware that rejects the request with 403
// unless the authenticated user's role carries the permission bit. It must
// run after JWTAuth, which stores the acting user in the context.
func RequirePermission(perm model.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*model.User)
			if !ok || !user.HasPermission(perm) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "msg": "Operation not allowed!"})
			}
			return next(c)
		}
	}
}
