package middleware

import (
	"log/slog"
	"time"

	"brewhouse/config"
	deliverycontext "brewhouse/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one access log line per request when debug is on.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()
	latency := time.Since(start)

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", latency),
		slog.Int64("bytes_out", res.Size),
		slog.String("remote_ip", c.RealIP()),
	}

	if sessionID, ok := deliverycontext.GetSessionID(c); ok {
		fields = append(fields, slog.String("session_id", sessionID.String()))
	}
	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case res.Status >= 500:
		level = slog.LevelError
	case res.Status >= 400:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(req.Context(), level, "HTTP Request", fields...)
}
