package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"brewhouse/internal/domain/entity"
)

// CartLineOptions configures a drink. Zero values fall back to the quick-add defaults.
type CartLineOptions struct {
	Quantity  int
	Size      entity.Size
	Milk      entity.Milk
	Sweetness *int
	Ice       entity.Ice
}

// AddCartLineInput adds one configured item to the cart.
type AddCartLineInput struct {
	ItemID int
	CartLineOptions
}

// CartView is the cart with its derived values.
type CartView struct {
	Lines []entity.CartLine
	Total decimal.Decimal
	Count int
}

// CartUsecase edits the cart of a session.
type CartUsecase interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	AddLine(ctx context.Context, sessionID uuid.UUID, input AddCartLineInput) (*CartView, error)

	// UpdateLine replaces the options of the line at index, keeping its item.
	// An out of range index leaves the cart unchanged.
	UpdateLine(ctx context.Context, sessionID uuid.UUID, index int, options CartLineOptions) (*CartView, error)

	// RemoveLine is a no-op for an out of range index.
	RemoveLine(ctx context.Context, sessionID uuid.UUID, index int) (*CartView, error)
}
