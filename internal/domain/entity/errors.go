package entity

import (
	"brewhouse/internal/errors"
)

// Invariant violations reported by entity methods. Use cases translate these
// into domain errors carrying an HTTP status.
var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidSize       = errors.New("size must be one of S, M, L")
	ErrInvalidMilk       = errors.New("unknown milk choice")
	ErrInvalidSweetness  = errors.New("sweetness must be between 0 and 100")
	ErrInvalidIce        = errors.New("unknown ice level")
	ErrNegativeCredits   = errors.New("credit amount must not be negative")
	ErrInvalidCardNumber = errors.New("card number must have 16 digits")
	ErrInvalidCardExpiry = errors.New("card expiry must be MM/YY")
)
