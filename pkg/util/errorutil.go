package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. Code identifies the
// violated rule and is stable for clients; HTTPStatus drives the
// transport mapping.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports a locally recoverable input problem.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("validation_error", message, http.StatusBadRequest, details)
}

// NewInvalidField rejects an inline update targeting a field outside
// the allow-list.
func NewInvalidField(field string) error {
	return NewDomainError("invalid_field", "invalid field", http.StatusBadRequest, map[string]any{"field": field})
}

// NewPermissionDenied aborts an operation the actor may not perform.
// No partial write survives a permission failure.
func NewPermissionDenied(message string) error {
	return NewDomainError("permission_denied", message, http.StatusForbidden, nil)
}

// NewNotFound reports a missing or cross-tenant resource. The message
// is uniform regardless of whether the id exists under another tenant.
func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       "not_found",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewProtected rejects deletion of an entity still referenced by
// others.
func NewProtected(message string, details map[string]any) error {
	return NewDomainError("referenced_entity_protected", message, http.StatusConflict, details)
}

// NewUnauthorized reports a missing or invalid credential.
func NewUnauthorized(message string) error {
	return NewDomainError("unauthorized", message, http.StatusUnauthorized, nil)
}

// NewConflict reports a state conflict.
func NewConflict(message string, details map[string]any) error {
	return NewDomainError("conflict", message, http.StatusConflict, details)
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       "internal_error",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "internal_error",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
