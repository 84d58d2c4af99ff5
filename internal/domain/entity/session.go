package entity

import (
	"time"

	"github.com/google/uuid"
)

// Theme is the colour scheme preference of a session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

// Session is one storefront visitor. It owns the cart, wishlist,
// notifications and theme, and may be attached to a User.
type Session struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the session.
	UserID       *uuid.UUID // Logged-in user, nil when anonymous or guest.
	IsGuest      bool       // One-shot guest checkout mode.
	DiscountCode string     // Promo code currently applied to the cart, empty when none.
	Theme        Theme      // Colour scheme preference.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSession returns an empty anonymous session with the given id.
func NewSession(id uuid.UUID) *Session {
	return &Session{
		ID:    id,
		Theme: ThemeLight,
	}
}

// IsAuthenticated reports whether a user is attached.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// CanCheckout reports whether the session may place an order.
func (s *Session) CanCheckout() bool {
	return s.IsAuthenticated() || s.IsGuest
}

// AttachUser logs the user in and leaves guest mode.
func (s *Session) AttachUser(userID uuid.UUID) {
	s.UserID = &userID
	s.IsGuest = false
}

// Detach logs the session out.
func (s *Session) Detach() {
	s.UserID = nil
	s.IsGuest = false
}
