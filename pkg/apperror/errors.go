package apperror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
// Fields carries the field-keyed validation messages surfaced to clients;
// Err wraps the internal cause and is never exposed.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"errors,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, "; "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
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

// ---- Wallet Business Logic (WLT) ----

// Validation returns a field-keyed validation error.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       "WLT_001",
		Message:    "Validation failed",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// FieldError returns a validation error for a single field.
func FieldError(field, message string) *AppError {
	return Validation(map[string]string{field: message})
}

// ErrCurrencyNotFound is returned when a currency name cannot be resolved.
func ErrCurrencyNotFound() *AppError {
	return FieldError("currency", "Not found")
}

// ErrUserRequired is returned when no authenticated user identity is present.
func ErrUserRequired() *AppError {
	return FieldError("user_id", "Not found")
}

// ErrWalletExists is returned when the user already owns a live wallet.
func ErrWalletExists() *AppError {
	return &AppError{
		Code:       "WLT_002",
		Message:    "Wallet already exists",
		Fields:     map[string]string{"user_id": "the user already has a wallet"},
		HTTPStatus: http.StatusConflict,
	}
}

// ErrNoWallet is returned when an operation requires a wallet the user
// does not have.
func ErrNoWallet() *AppError {
	return &AppError{
		Code:       "WLT_003",
		Message:    "Wallet not found",
		Fields:     map[string]string{"wallet": "user has no wallet"},
		HTTPStatus: http.StatusBadRequest,
	}
}

// ErrWalletNotFound is returned when a wallet lookup finds nothing.
func ErrWalletNotFound() *AppError {
	return &AppError{
		Code:       "WLT_003",
		Message:    "Wallet not found",
		Fields:     map[string]string{"user_id": "wallet not found"},
		HTTPStatus: http.StatusBadRequest,
	}
}

// ErrInsufficientFunds is returned when a debit would drive the balance
// below zero.
func ErrInsufficientFunds() *AppError {
	return &AppError{
		Code:       "WLT_004",
		Message:    "Insufficient funds",
		Fields:     map[string]string{"value": "insufficient funds"},
		HTTPStatus: http.StatusBadRequest,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an unexpected persistence or runtime failure. The
// wrapped cause is logged, never surfaced.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// BadRequest returns a generic malformed-payload error.
func BadRequest(message string) *AppError {
	return New("WLT_001", message, http.StatusBadRequest)
}
