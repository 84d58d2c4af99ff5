// Package response writes the unified JSON envelope used by every endpoint.
package response

import (
	"net/http"

	deliverycontext "brewhouse/internal/delivery/context"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// OK is Success with status 200.
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

// Created is Success with status 201.
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// Message acknowledges a command that has nothing else to return.
func Message(c echo.Context, message string) error {
	return OK(c, map[string]string{"message": message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BindingError returns a binding error response
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", message, nil)
}

// InvalidID reports a malformed path parameter.
func InvalidID(c echo.Context, name string) error {
	return Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name, nil)
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// HandleAppError writes the response for an AppError and passes anything else on
// to the HTTP error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
