package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FulfillmentMethod decides the delivery fee and the shape of the status sequence.
type FulfillmentMethod string

const (
	FulfillmentDelivery  FulfillmentMethod = "delivery"
	FulfillmentPickup    FulfillmentMethod = "pickup"
	FulfillmentDriveThru FulfillmentMethod = "drive-thru"
)

// IsValid checks if the FulfillmentMethod is known.
func (m FulfillmentMethod) IsValid() bool {
	switch m {
	case FulfillmentDelivery, FulfillmentPickup, FulfillmentDriveThru:
		return true
	default:
		return false
	}
}

// String returns the string representation of the FulfillmentMethod.
func (m FulfillmentMethod) String() string {
	return string(m)
}

// Order is the immutable record of a checkout. Only Status and
// EstimatedMinutes change after creation.
type Order struct {
	ID                uuid.UUID         // The Global Unique Identifier (GUID) for the order.
	SessionID         uuid.UUID         // Session that placed the order.
	UserID            *uuid.UUID        // Purchaser, nil for guest orders.
	Lines             []CartLine        // Deep copy of the cart at placement time.
	Subtotal          decimal.Decimal   // Sum of line totals.
	Tax               decimal.Decimal   // Tax on the cold subtotal.
	DeliveryFee       decimal.Decimal   // Fee charged for delivery orders.
	Discount          decimal.Decimal   // Promo code discount.
	CreditsDiscount   decimal.Decimal   // Currency value paid with credits.
	Total             decimal.Decimal   // Grand total, never negative.
	DiscountCode      string            // Promo code applied, empty when none.
	CreditsEarned     int               // Credits granted for this order.
	CreditsUsed       int               // Credits deducted for this order.
	Status            OrderStatus       // Current fulfillment state.
	FulfillmentMethod FulfillmentMethod // Delivery, pickup, or drive-thru.
	IsGuestOrder      bool              // Placed in guest mode.
	EstimatedMinutes  int               // Cosmetic countdown shown while tracking.
	DeliveryAddress   string            // Formatted address for delivery orders.
	VehicleInfo       string            // Vehicle description for drive-thru orders.
	PaymentReference  string            // Reference returned by the payment gateway.
	CreatedAt         time.Time         // Timestamp of placement.
	UpdatedAt         time.Time         // Timestamp of the last status change.
}

// ShortID is the first eight characters of the order id, used in customer messages.
func (o *Order) ShortID() string {
	return o.ID.String()[:8]
}

// ItemCount is the sum of quantities across all lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, line := range o.Lines {
		count += line.Quantity
	}

	return count
}
