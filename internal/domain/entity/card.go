package entity

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// CardType is the payment network of a saved card.
type CardType string

const (
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardAmex       CardType = "amex"
)

// DetectCardType guesses the network from the first digit of the number.
func DetectCardType(number string) CardType {
	digits := DigitsOnly(number)
	if digits == "" {
		return CardVisa
	}
	switch digits[0] {
	case '5', '2':
		return CardMastercard
	case '3':
		return CardAmex
	default:
		return CardVisa
	}
}

// DigitsOnly strips everything except decimal digits.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// ParseExpiry parses an MM/YY expiry.
func ParseExpiry(expiry string) (month, year int, err error) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(expiry), "/")
	if !ok || len(mm) != 2 || len(yy) != 2 {
		return 0, 0, ErrInvalidCardExpiry
	}
	month, err = strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidCardExpiry
	}
	year, err = strconv.Atoi(yy)
	if err != nil {
		return 0, 0, ErrInvalidCardExpiry
	}

	return month, year, nil
}

// SavedCard is a payment card stored on a user profile. Only the last four
// digits of the number are ever kept.
type SavedCard struct {
	ID          uuid.UUID
	Type        CardType
	LastFour    string
	HolderName  string
	ExpiryMonth int
	ExpiryYear  int // Two-digit year.
	IsDefault   bool
}

// NewSavedCard validates a raw card number and expiry and returns the card
// with only the last four digits retained.
func NewSavedCard(number, expiry, holder string) (*SavedCard, error) {
	digits := DigitsOnly(number)
	if len(digits) != 16 {
		return nil, ErrInvalidCardNumber
	}
	month, year, err := ParseExpiry(expiry)
	if err != nil {
		return nil, err
	}

	return &SavedCard{
		ID:          uuid.New(),
		Type:        DetectCardType(digits),
		LastFour:    digits[12:],
		HolderName:  holder,
		ExpiryMonth: month,
		ExpiryYear:  year,
	}, nil
}

// Expiry renders the expiry as MM/YY.
func (c *SavedCard) Expiry() string {
	return fmt.Sprintf("%02d/%02d", c.ExpiryMonth, c.ExpiryYear)
}

// AddCard stores a new card; the first card becomes the default.
func (u *User) AddCard(card *SavedCard) {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	if len(u.Cards) == 0 {
		card.IsDefault = true
	}
	if card.IsDefault {
		for _, c := range u.Cards {
			c.IsDefault = false
		}
	}
	u.Cards = append(u.Cards, card)
}

// FindCard returns the card with the given id.
func (u *User) FindCard(id uuid.UUID) (*SavedCard, bool) {
	for _, c := range u.Cards {
		if c.ID == id {
			return c, true
		}
	}

	return nil, false
}

// SetDefaultCard flags id as the default and clears every other card.
func (u *User) SetDefaultCard(id uuid.UUID) bool {
	if _, ok := u.FindCard(id); !ok {
		return false
	}
	for _, c := range u.Cards {
		c.IsDefault = c.ID == id
	}

	return true
}

// RemoveCard deletes a card, promoting the first remaining card when the
// default is removed.
func (u *User) RemoveCard(id uuid.UUID) bool {
	for i, c := range u.Cards {
		if c.ID != id {
			continue
		}
		u.Cards = append(u.Cards[:i], u.Cards[i+1:]...)
		if c.IsDefault && len(u.Cards) > 0 {
			u.Cards[0].IsDefault = true
		}

		return true
	}

	return false
}
