package errors

import (
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound           = NewNotFoundError("resource", "resource not found")
	ErrAlreadyExists      = NewConflictError("resource", "resource already exists")
	ErrInvalidCredentials = NewInvalidCredentialsError()
	ErrUnauthorized       = NewAuthError("Unauthorized")
	ErrInternal           = NewInternalError("internal server error", nil)
)

// HTTPStatuser interface for errors that map to an HTTP status code
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface.
// The message is the client-facing response body, so no internal prefix.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return fmt.Sprintf("%s is invalid", e.Field)
	}
	return "invalid input"
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// ConflictError represents a resource already exists error
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error.
// Duplicate registration is reported as 400, matching the public API contract.
func (e *ConflictError) HTTPStatus() int {
	return http.StatusBadRequest
}

// AuthError represents an authentication failure: bad credentials on login,
// or a missing/malformed/expired bearer token on protected routes.
type AuthError struct {
	Message string
	Status  int
}

// NewAuthError creates an auth error for a rejected bearer token (401)
func NewAuthError(message string) *AuthError {
	return &AuthError{
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewInvalidCredentialsError creates the auth error returned by login for both
// an unknown email and a wrong password. The two cases are deliberately
// indistinguishable to the client.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		Message: "Invalid credentials",
		Status:  http.StatusBadRequest,
	}
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *AuthError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return http.StatusUnauthorized
}

// NotFoundError represents a resource not found error.
// A resource owned by another identity is also reported as not found.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}
