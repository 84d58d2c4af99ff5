package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// gormSlogLogger routes GORM output into the service logger under component=gorm.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, debug bool, slowThreshold time.Duration) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	if baseLogger != nil {
		baseLogger = baseLogger.With(slog.String("component", "gorm"))
	}

	return &gormSlogLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.logger == nil || l.level < threshold {
		return
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf(msg, args...), slog.String("caller", utils.FileWithLineNum()))
}

// Trace logs failed queries at error, slow ones at warn and, in debug mode, everything else at info.
// Missing rows are expected by the repositories and never logged as failures.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		level slog.Level
		msg   string
	)
	switch {
	case failed && l.level >= logger.Error:
		level, msg = slog.LevelError, "Query failed"
	case slow && l.level >= logger.Warn:
		level, msg = slog.LevelWarn, "Slow query"
	case l.level >= logger.Info:
		level, msg = slog.LevelInfo, "Query"
	default:
		return
	}

	query, rows := sqlAndRowsFn()
	attrs := []slog.Attr{
		slog.String("sql", query),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
		slog.String("caller", utils.FileWithLineNum()),
	}
	if failed {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	if slow {
		attrs = append(attrs, slog.Duration("slow_threshold", l.slowThreshold))
	}

	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
