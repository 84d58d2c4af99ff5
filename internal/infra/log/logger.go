package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"

	"brewhouse/config"
	"brewhouse/internal/errors"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New creates and initializes slog.Logger
func New(params Params) (*slog.Logger, error) {
	return build(os.Stdout, params.Config)
}

func build(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := parseLogLevel(cfg.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.Env.Debug}

	var handler slog.Handler
	if cfg.Env.Log.Pretty {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Env.ServiceName != "" {
		logger = logger.With(slog.String("service", cfg.Env.ServiceName))
	}

	return logger, nil
}

// parseLogLevel converts string log level to slog.Level. Empty means info.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
