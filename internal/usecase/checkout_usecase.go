package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/pricing"
)

// QuoteInput selects how the cart would be checked out.
type QuoteInput struct {
	Method     entity.FulfillmentMethod
	UseCredits bool
}

// QuoteOutput is the priced cart.
type QuoteOutput struct {
	Breakdown     pricing.Breakdown
	Discount      pricing.Discount
	CreditBalance int
	CanUseCredits bool
}

// DeliveryDetails is a delivery address typed in at checkout.
type DeliveryDetails struct {
	FullName  string `validate:"required"`
	Street    string `validate:"required"`
	Apartment string
	City      string `validate:"required"`
	State     string `validate:"required"`
	ZipCode   string `validate:"required,numeric,len=5"`
	Phone     string `validate:"required,min=7"`
}

// VehicleDetails identifies a car at the drive-thru window.
type VehicleDetails struct {
	Model string `validate:"required"`
	Color string `validate:"required"`
}

// CardDetails is a card typed in at checkout.
type CardDetails struct {
	Number     string `validate:"required"`
	Expiry     string `validate:"required"`
	CVV        string `validate:"required,numeric,min=3,max=4"`
	ZipCode    string `validate:"required,numeric,len=5"`
	HolderName string
	Save       bool
}

// PlaceOrderInput is everything a checkout needs beyond the session state.
type PlaceOrderInput struct {
	Method     entity.FulfillmentMethod
	UseCredits bool

	AddressID *uuid.UUID
	Delivery  *DeliveryDetails
	Vehicle   *VehicleDetails

	CardID *uuid.UUID
	Card   *CardDetails

	// ExpectedTotal, when set, must match the re-priced grand total.
	ExpectedTotal *decimal.Decimal
}

// CheckoutUsecase prices the cart and turns it into an order.
type CheckoutUsecase interface {
	Quote(ctx context.Context, sessionID uuid.UUID, input QuoteInput) (*QuoteOutput, error)

	// ApplyDiscount stores a valid code on the session. An unknown code is
	// reported through the result, not as an error.
	ApplyDiscount(ctx context.Context, sessionID uuid.UUID, code string) (pricing.CodeValidation, error)
	RemoveDiscount(ctx context.Context, sessionID uuid.UUID) error

	PlaceOrder(ctx context.Context, sessionID uuid.UUID, input PlaceOrderInput) (*entity.Order, error)
}
