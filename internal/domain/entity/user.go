package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered customer. The credit balance is the loyalty ledger and
// is only ever changed through EarnCredits and SpendCredits.
type User struct {
	ID             uuid.UUID       // The Global Unique Identifier (GUID) for the user.
	Email          string          // Login identifier, unique across users.
	Name           string          // Display name.
	Avatar         string          // Public URL of the uploaded avatar, empty when unset.
	PreferredDrink string          // Free-form favourite drink shown on the profile.
	PasswordHash   string          // bcrypt hash of the password.
	Credits        int             // Loyalty credit balance, never negative.
	Addresses      []*SavedAddress // Saved delivery addresses, at most one default.
	Cards          []*SavedCard    // Saved payment cards, at most one default.
	CreatedAt      time.Time       // Timestamp of when this user account was created.
	UpdatedAt      time.Time       // Timestamp of the last modification to this user's data.
}

// NameFromEmail derives a display name from the local part of an email address.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}

	return local
}

// EarnCredits adds amount to the balance. Negative amounts are rejected.
func (u *User) EarnCredits(amount int) error {
	if amount < 0 {
		return ErrNegativeCredits
	}
	u.Credits += amount

	return nil
}

// SpendCredits deducts amount when the balance covers it and reports whether
// it did. Negative amounts and overdrafts leave the balance unchanged.
func (u *User) SpendCredits(amount int) bool {
	if amount < 0 || amount > u.Credits {
		return false
	}
	u.Credits -= amount

	return true
}
