package middleware

import (
	"context"
	"errors"

	"velodrive/internal/common"
	"velodrive/internal/models"
	"velodrive/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	tokenContextKey  = "user"
	claimsContextKey = "claims"
)

// JWTMiddleware resolves the caller from an optional Bearer token. Requests
// without a token continue as guests; a present but invalid, expired or
// revoked token is rejected. Tokens are validated by authSvc.
func JWTMiddleware(authSvc services.AuthService) echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		ContextKey: tokenContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return authSvc.ValidateToken(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return nil
			}
			var unauthorized *common.UnauthorizedError
			if errors.As(err, &unauthorized) {
				return unauthorized
			}
			return common.NewUnauthorizedError("Invalid or expired token")
		},
		ContinueOnIgnoredError: true,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(bindClaims(next))
	}
}

func bindClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		claims, ok := c.Get(tokenContextKey).(*services.TokenClaims)
		if !ok {
			c.SetRequest(c.Request().WithContext(common.WithRole(ctx, models.RoleGuest)))
			return next(c)
		}
		if claims.UserID <= 0 {
			return common.NewUnauthorizedError("Invalid or expired token")
		}

		// A signed token always belongs to a registered user.
		role := models.ParseRole(claims.Role)
		if role == models.RoleGuest {
			role = models.RoleClient
		}

		ctx = context.WithValue(ctx, common.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, common.TokenIDKey, claims.ID)
		ctx = common.WithRole(ctx, role)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set(claimsContextKey, claims)

		return next(c)
	}
}

// GetClaims returns the validated token claims of the request, if any.
func GetClaims(c echo.Context) (*services.TokenClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*services.TokenClaims)
	return claims, ok
}
