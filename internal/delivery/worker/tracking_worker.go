// Package worker runs the background jobs of the storefront.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"brewhouse/config"
	"brewhouse/internal/delivery"
	"brewhouse/internal/domain/lifecycle"
	"brewhouse/internal/usecase"
	"brewhouse/internal/util"

	"go.uber.org/fx"
)

const defaultTrackingInterval = 6 * time.Second

// TrackingWorkerParams holds dependencies for the tracking worker
type TrackingWorkerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	OrderUC usecase.OrderUsecase
}

// TrackingWorker advances every active order one step per tick.
type TrackingWorker struct {
	orderUC  usecase.OrderUsecase
	logger   *slog.Logger
	enabled  bool
	interval time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// NewTrackingWorker creates the worker and registers its stop hook.
func NewTrackingWorker(params TrackingWorkerParams) (delivery.Delivery, error) {
	w := newTrackingWorker(params.Cfg, params.OrderUC, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

func newTrackingWorker(cfg *config.Config, orderUC usecase.OrderUsecase, logger *slog.Logger) *TrackingWorker {
	enabled := true
	interval := defaultTrackingInterval
	if cfg.Tracking != nil {
		enabled = cfg.Tracking.Enabled
		if cfg.Tracking.Interval > 0 {
			interval = cfg.Tracking.Interval
		}
	}

	return &TrackingWorker{
		orderUC:  orderUC,
		logger:   logger,
		enabled:  enabled,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Serve blocks until ctx is cancelled or the worker is stopped.
func (w *TrackingWorker) Serve(ctx context.Context) error {
	defer close(w.done)

	if !w.enabled {
		w.logger.Info("Order tracking worker disabled")

		return nil
	}

	w.logger.Info("Starting order tracking worker", slog.String("interval", util.FormatDuration(w.interval)))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *TrackingWorker) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	start := time.Now()
	moved, err := w.orderUC.AdvanceActive(tickCtx)
	if err != nil {
		w.logger.Error("Order tracking tick failed", slog.Any("error", err))

		return
	}
	if moved > 0 {
		w.logger.Debug("Advanced active orders",
			slog.Int("orders", moved),
			slog.Duration("took", time.Since(start)),
		)
	}
}

func (w *TrackingWorker) stop(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stopCh) })

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	w.logger.Info("Stopping order tracking worker")

	select {
	case <-w.done:
	case <-shutdownCtx.Done():
		w.logger.Warn("Order tracking worker did not stop in time")
	}

	return nil
}
