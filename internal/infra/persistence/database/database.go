// Package database implements the persistence layer on GORM. SQLite and
// PostgreSQL are both supported; the driver is picked by configuration.
package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"brewhouse/config"
	"brewhouse/internal/domain/lifecycle"
	"brewhouse/internal/errors"
	"brewhouse/internal/infra/persistence/model"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database and migrates the schema when enabled.
func New(params Params) (*gorm.DB, error) {
	db, err := open(params.Config)
	if err != nil {
		return nil, err
	}
	db = db.Session(&gorm.Session{
		// Disable GORM's per-statement implicit transaction.
		// We keep explicit transactions via txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config.Env.Debug, params.Config.Database.SlowQueryThreshold),
	})

	if params.Config.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping database")
			}

			params.Logger.Info("Database connected", "driver", params.Config.Database.Driver)
			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Postgres == nil {
			return nil, errors.New("postgres driver selected but postgres config is missing")
		}
		db, err := pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}

		return db, nil
	case config.DriverSQLite, "":
		db, err := OpenSQLite(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}

		return db, nil
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// OpenSQLite opens a SQLite database. SQLite allows a single writer, so the
// pool is capped at one connection.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
					slog.Int64("waitCountTotal", cur.WaitCount),
					slog.Duration("waitDurationTotal", cur.WaitDuration),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Database pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Database pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
