package common

import (
	"context"
	"errors"
	"log"
	"net/http"

	"velodrive/internal/models"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RoleKey      contextKey = "role"
	TokenIDKey   contextKey = "token_id"
	RequestIDKey contextKey = "request_id"
)

// Failure is the uniform failure envelope returned at the boundary.
type Failure struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
}

// CreateFailure creates a failure envelope.
func CreateFailure(code, message, field string) *Failure {
	return &Failure{OK: false, Message: message, Code: code, Field: field}
}

// SendFailure converts err into the failure envelope with a matching status.
// Unclassified errors are logged and reported with a generic message.
func SendFailure(c echo.Context, err error) error {
	status, failure := ClassifyError(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, failure)
}

// ClassifyError maps an error onto an HTTP status and failure envelope.
func ClassifyError(err error) (int, *Failure) {
	var validationErr *ValidationError
	var unauthorizedErr *UnauthorizedError
	var notFoundErr *NotFoundError
	var referencedErr *ReferencedError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, CreateFailure("VALIDATION_ERROR", validationErr.Message, validationErr.Field)
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized, CreateFailure("UNAUTHORIZED", unauthorizedErr.Message, "")
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, CreateFailure("UNAUTHORIZED", "Unauthorized access", "")
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, CreateFailure("FORBIDDEN", "Insufficient permissions", "")
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, CreateFailure("NOT_FOUND", notFoundErr.Error(), "")
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, CreateFailure("NOT_FOUND", "Record not found", "")
	case errors.As(err, &referencedErr):
		return http.StatusConflict, CreateFailure("REFERENCED", referencedErr.Error(), "")
	case errors.Is(err, ErrReferenced):
		return http.StatusConflict, CreateFailure("REFERENCED", "Record is referenced by other records", "")
	case errors.Is(err, ErrCreatedNotLoaded):
		return http.StatusInternalServerError, CreateFailure("SERVER_ERROR", ErrCreatedNotLoaded.Error(), "")
	default:
		return http.StatusInternalServerError, CreateFailure("SERVER_ERROR", "The operation could not be completed", "")
	}
}

// SendValidationError sends a validation failure for a single field.
func SendValidationError(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, CreateFailure("VALIDATION_ERROR", message, field))
}

// WithRole stores the caller's role in ctx.
func WithRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// GetRoleFromContext returns the caller's role, or guest when none is set.
func GetRoleFromContext(ctx context.Context) models.Role {
	if role, ok := ctx.Value(RoleKey).(models.Role); ok {
		return role
	}
	return models.RoleGuest
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetRequestIDFromContext extracts the request ID from the request context
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
