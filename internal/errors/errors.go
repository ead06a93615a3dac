package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError by code, so wrapped copies of a predefined
// error still satisfy errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "email already exists")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrSelfDeletion       = NewDomainError("SELF_DELETION", "users cannot delete themselves")
	ErrUserInactive       = NewDomainError("USER_INACTIVE", "user account is inactive")

	// Catalog errors
	ErrCategoryNotFound = NewDomainError("CATEGORY_NOT_FOUND", "category not found")
	ErrCategoryExists   = NewDomainError("CATEGORY_EXISTS", "category name or slug already exists")
	ErrCategoryInUse    = NewDomainError("CATEGORY_IN_USE", "category still has plants")
	ErrPlantNotFound    = NewDomainError("PLANT_NOT_FOUND", "plant not found")
	ErrFavoriteNotFound = NewDomainError("FAVORITE_NOT_FOUND", "favorite not found")
	ErrFavoriteExists   = NewDomainError("FAVORITE_EXISTS", "plant is already a favorite")

	// Authentication errors
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrForbidden           = NewDomainError("FORBIDDEN", "access forbidden")
	ErrInvalidToken        = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrTokenExpired        = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "invalid refresh token")

	// Validation errors
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidQuery      = NewDomainError("INVALID_QUERY", "invalid query parameter")
	ErrPasswordMismatch  = NewDomainError("PASSWORD_MISMATCH", "new password and confirmation do not match")
	ErrIncorrectPassword = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// FromQueryError maps a list query failure to a domain error. Rejected
// parameters keep their message so clients can see what to fix.
func FromQueryError(err error) error {
	if err == nil {
		return nil
	}

	var ve *querybuilder.ValidationError
	if errors.As(err, &ve) {
		return &DomainError{Code: ErrInvalidQuery.Code, Message: ve.Error(), Err: err}
	}
	return WrapError(ErrInternal, err)
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "INVALID_QUERY", "PASSWORD_MISMATCH":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_TOKEN",
		"TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "INCORRECT_PASSWORD":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "SELF_DELETION", "FORBIDDEN", "USER_INACTIVE":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "CATEGORY_NOT_FOUND", "PLANT_NOT_FOUND", "FAVORITE_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "CATEGORY_EXISTS", "CATEGORY_IN_USE", "FAVORITE_EXISTS":
		return http.StatusConflict

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
