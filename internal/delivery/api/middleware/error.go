package middleware

import (
	"log/slog"

	"brewhouse/internal/delivery/api/response"
	deliverycontext "brewhouse/internal/delivery/context"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= 500 {
			m.log(c).Error("Request failed", slog.Any("error", err), slog.String("path", c.Request().URL.Path))
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := "An error occurred"
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	m.log(c).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.String("stack", errors.Stack(err)),
	)

	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), "Internal server error, please try again later")
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}
