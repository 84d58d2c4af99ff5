// Package errors defines the application error taxonomy. Every failure a use
// case surfaces is an AppError carrying its HTTP status and business code.
package errors

import (
	"net/http"

	"brewhouse/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// newBaseError creates a new base error
func newBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same business code, so errors derived
// through WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	return ok && t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Session errors
	ErrSessionNotFound = newBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"Session not found",
		"",
	)

	ErrUnauthorized = newBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Missing or invalid session token",
		"",
	)

	ErrLoginRequired = newBaseError(
		http.StatusUnauthorized,
		"LOGIN_REQUIRED",
		"Log in or continue as guest to check out",
		"",
	)

	// User errors
	ErrUserNotFound = newBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = newBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"An account with this email already exists",
		"",
	)

	ErrInvalidCredentials = newBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrInvalidGoogleToken = newBaseError(
		http.StatusUnauthorized,
		"INVALID_GOOGLE_TOKEN",
		"Google sign-in could not be verified",
		"",
	)

	ErrGoogleSignInDisabled = newBaseError(
		http.StatusServiceUnavailable,
		"GOOGLE_SIGNIN_DISABLED",
		"Google sign-in is not available",
		"",
	)

	ErrPasswordHashFailed = newBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	ErrAddressNotFound = newBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"Address not found",
		"",
	)

	ErrCardNotFound = newBaseError(
		http.StatusNotFound,
		"CARD_NOT_FOUND",
		"Card not found",
		"",
	)

	ErrAvatarTooLarge = newBaseError(
		http.StatusRequestEntityTooLarge,
		"AVATAR_TOO_LARGE",
		"Avatar image is too large",
		"",
	)

	ErrUnsupportedAvatarType = newBaseError(
		http.StatusUnsupportedMediaType,
		"UNSUPPORTED_AVATAR_TYPE",
		"Avatar must be a PNG, JPEG, GIF or WebP image",
		"",
	)

	// Catalog and cart errors
	ErrItemNotFound = newBaseError(
		http.StatusNotFound,
		"ITEM_NOT_FOUND",
		"Item not found",
		"",
	)

	ErrInvalidCartLine = newBaseError(
		http.StatusBadRequest,
		"INVALID_CART_LINE",
		"Invalid cart line",
		"",
	)

	ErrCartEmpty = newBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Your cart is empty",
		"",
	)

	// Checkout errors
	ErrDiscountAlreadyApplied = newBaseError(
		http.StatusConflict,
		"DISCOUNT_ALREADY_APPLIED",
		"A discount code is already applied",
		"",
	)

	ErrCheckoutInProgress = newBaseError(
		http.StatusConflict,
		"CHECKOUT_IN_PROGRESS",
		"A checkout is already in progress for this session",
		"",
	)

	ErrCartChanged = newBaseError(
		http.StatusConflict,
		"CART_CHANGED",
		"Your cart changed during checkout, please review the new total",
		"",
	)

	ErrPaymentDeclined = newBaseError(
		http.StatusPaymentRequired,
		"PAYMENT_DECLINED",
		"Payment was declined",
		"",
	)

	// Order errors
	ErrOrderNotFound = newBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrOrderStatusConflict = newBaseError(
		http.StatusConflict,
		"ORDER_STATUS_CONFLICT",
		"Order status changed concurrently",
		"",
	)

	// Validation errors
	ErrValidationFailed = newBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = newBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = newBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap returns the underlying database error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
