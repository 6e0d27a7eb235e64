package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"velodrive/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, reusing a well-formed incoming
// X-Request-ID, and echoes it in the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			c.Response().Header().Set(requestIDHeader, id)
			ctx := context.WithValue(c.Request().Context(), common.RequestIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// AuditRequest logs writes and failed requests with the caller's role.
func AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			if !shouldAudit(method, path, err) {
				return err
			}

			ctx := c.Request().Context()
			status := c.Response().Status
			if err != nil {
				status, _ = common.ClassifyError(err)
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			log.Printf("AUDIT: request_id=%s role=%s method=%s path=%s uri=%s status=%d ip=%s duration=%s",
				common.GetRequestIDFromContext(ctx),
				common.GetRoleFromContext(ctx),
				method, path, c.Request().RequestURI, status, c.RealIP(),
				time.Since(start).Round(time.Millisecond))

			return err
		}
	}
}

// shouldAudit skips successful reads and health checks.
func shouldAudit(method, path string, reqErr error) bool {
	if reqErr != nil {
		return true
	}
	if method == http.MethodGet || method == http.MethodHead {
		return false
	}
	return !strings.HasPrefix(path, "/health")
}
