package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation reports malformed input: bad username pattern, empty password,
// missing required fields.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Conflict (CONFLICT) ----

func ErrUsernameExists() *AppError {
	return New("CONFLICT_001", "Username already exists", http.StatusConflict)
}

func ErrAlreadyMember() *AppError {
	return New("CONFLICT_002", "User already has access to this wallet", http.StatusConflict)
}

// ---- Not found (NOT_FOUND) ----

func ErrNotFound(entity string) *AppError {
	return New("NOT_FOUND_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication & authorization (AUTH) ----

func ErrAuthRequired() *AppError {
	return New("AUTH_001", "Authentication required", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid token", http.StatusUnauthorized)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_003", "Invalid credentials", http.StatusUnauthorized)
}

// ErrNoAccess reports a caller that is not on the wallet's access list.
func ErrNoAccess() *AppError {
	return New("AUTH_004", "No access to this wallet", http.StatusForbidden)
}

// ---- Invariant violations (INVARIANT) ----

// ErrLastMember reports an attempt to remove the final member of a wallet.
func ErrLastMember() *AppError {
	return New("INVARIANT_001", "Cannot remove the last member of a wallet", http.StatusConflict)
}

// ---- System & infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ---- Classification helpers ----

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err carries the not-found classification.
func IsNotFound(err error) bool {
	return hasCode(err, "NOT_FOUND_001")
}

// IsAuth reports whether err carries an authentication/authorization classification.
func IsAuth(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.HTTPStatus == http.StatusUnauthorized || appErr.HTTPStatus == http.StatusForbidden
}

// IsConflict reports whether err carries a conflict classification.
func IsConflict(err error) bool {
	return hasCode(err, "CONFLICT_001") || hasCode(err, "CONFLICT_002")
}

// IsInvariant reports whether err carries the invariant-violation classification.
func IsInvariant(err error) bool {
	return hasCode(err, "INVARIANT_001")
}

// IsValidation reports whether err carries the validation classification.
func IsValidation(err error) bool {
	return hasCode(err, "VAL_001")
}
