package middleware

import (
	"github.com/labstack/echo/v4"
)

// CurrentAPIVersion is the only served API version.
const CurrentAPIVersion = "v1"

// VersionRoute creates a version-specific route group that reports the
// version in the X-API-Version header.
func VersionRoute(e *echo.Echo, version string) *echo.Group {
	group := e.Group("/" + version)
	group.Use(VersionHeader(version))
	return group
}

// VersionHeader adds version information to response headers
func VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			return next(c)
		}
	}
}
