package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// Auth rejection codes. They stay distinct inside the process so the
// guard, logout flow and tests can tell outcomes apart; the HTTP layer
// collapses all of them into one generic 401 body so a client cannot
// probe whether a token was revoked, expired or tampered with.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeTokenRevoked    = "TOKEN_REVOKED"
	CodeTokenInvalid    = "TOKEN_INVALID"
	CodeForbidden       = "FORBIDDEN"
)

// DomainError standardizes application errors.
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

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthenticated marks requests carrying no credential or a
// structurally malformed authorization header.
func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

// NewTokenRevoked marks credentials found in the revocation registry.
func NewTokenRevoked() error {
	return NewDomainError(CodeTokenRevoked, "token revoked", http.StatusUnauthorized, nil)
}

// NewTokenInvalid marks credentials failing signature or expiry checks.
func NewTokenInvalid(err error) error {
	return &DomainError{
		Code:       CodeTokenInvalid,
		Message:    "invalid token",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsAuthRejection reports whether the error is one of the credential
// rejection kinds that must render as an indistinct 401.
func IsAuthRejection(err error) bool {
	de := ToDomainError(err)
	if de == nil {
		return false
	}
	switch de.Code {
	case CodeUnauthenticated, CodeTokenRevoked, CodeTokenInvalid:
		return true
	}
	return false
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
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
