package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a referential constraint failure.
const foreignKeyViolation = "23503"

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrReferenced       = errors.New("referenced by other records")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrCreatedNotLoaded = errors.New("record was created but could not be loaded")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a field validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not-found error for the resource.
func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ReferencedError reports a delete blocked by dependent records.
type ReferencedError struct {
	Resource string
	By       string
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("%s cannot be deleted because it is used in %s", e.Resource, e.By)
}

func (e *ReferencedError) Unwrap() error {
	return ErrReferenced
}

// NewReferencedError creates a referential-constraint error.
func NewReferencedError(resource, by string) error {
	return &ReferencedError{Resource: resource, By: by}
}

// UnauthorizedError reports rejected credentials or tokens.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NewUnauthorizedError creates an authentication failure with a caller-facing message.
func NewUnauthorizedError(message string) error {
	return &UnauthorizedError{Message: message}
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
