package middleware

import (
	"velodrive/internal/common"
	"velodrive/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireCapability rejects callers whose role lacks the capability. Guests
// get 401, signed-in users 403.
func RequireCapability(capability models.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := common.GetRoleFromContext(c.Request().Context())
			if role.Can(capability) {
				return next(c)
			}
			if role == models.RoleGuest {
				return common.ErrUnauthorized
			}
			c.Logger().Warnf("role %s denied %s on %s %s", role, capability, c.Request().Method, c.Path())
			return common.ErrForbidden
		}
	}
}

// RequireAuth rejects guests.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := common.GetUserIDFromContext(c.Request().Context()); !ok {
				return common.ErrUnauthorized
			}
			return next(c)
		}
	}
}
