package usecase

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// TrackingOutput is an order with its customer-facing timeline.
type TrackingOutput struct {
	Order       *entity.Order
	Steps       []entity.TrackingStep
	StatusLabel string
}

// OrderUsecase reads order history and drives the fulfillment state machine.
type OrderUsecase interface {
	// List returns the orders of the logged-in user, or of the session when
	// nobody is logged in, most recent first.
	List(ctx context.Context, sessionID uuid.UUID) ([]*entity.Order, error)
	Get(ctx context.Context, sessionID, orderID uuid.UUID) (*entity.Order, error)
	Track(ctx context.Context, sessionID, orderID uuid.UUID) (*TrackingOutput, error)
	PickupQR(ctx context.Context, sessionID, orderID uuid.UUID) ([]byte, error)

	// Tick advances one order by exactly one step. It reports false when the
	// order is already terminal.
	Tick(ctx context.Context, orderID uuid.UUID) (bool, error)

	// AdvanceActive ticks every non-terminal order once and returns how many moved.
	AdvanceActive(ctx context.Context) (int, error)
}
