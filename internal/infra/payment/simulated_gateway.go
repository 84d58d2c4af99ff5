// Package payment holds the demo payment gateway. No money moves: a charge
// waits for the configured delay and is then approved.
package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"brewhouse/config"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/util"
)

// DeclinedLastFour is the card ending that the simulator always declines.
const DeclinedLastFour = "0002"

type simulatedGateway struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewSimulatedGateway creates the gateway used by checkout.
func NewSimulatedGateway(cfg *config.Config, logger *slog.Logger) service.PaymentGateway {
	var delay time.Duration
	if cfg.Checkout != nil {
		delay = cfg.Checkout.PaymentDelay
	}

	return &simulatedGateway{delay: delay, logger: logger}
}

func (g *simulatedGateway) Authorize(ctx context.Context, req service.PaymentRequest) (*service.PaymentReceipt, error) {
	if req.Amount.IsNegative() {
		return nil, domainerrors.ErrPaymentDeclined.WrapMessage("amount must not be negative")
	}

	if err := util.Wait(ctx, g.delay); err != nil {
		return nil, errors.Wrap(err, "payment authorisation interrupted")
	}

	if req.LastFour == DeclinedLastFour {
		g.logger.Info("Payment declined",
			slog.String("order_id", req.OrderID.String()),
			slog.String("amount", req.Amount.StringFixed(2)),
		)

		return nil, domainerrors.ErrPaymentDeclined
	}

	reference := "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	g.logger.Debug("Payment authorised",
		slog.String("order_id", req.OrderID.String()),
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("reference", reference),
	)

	return &service.PaymentReceipt{Reference: reference}, nil
}
