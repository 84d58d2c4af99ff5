package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequest describes a charge to authorise.
type PaymentRequest struct {
	OrderID  uuid.UUID
	Amount   decimal.Decimal
	CardID   *uuid.UUID // Saved card, when paying with one.
	LastFour string     // Last four digits of a card entered at checkout.
}

// PaymentReceipt is the gateway's answer to an authorised charge.
type PaymentReceipt struct {
	Reference string
}

// PaymentGateway authorises checkout payments.
type PaymentGateway interface {
	Authorize(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
}
