package entity

import (
	"strings"

	"github.com/google/uuid"
)

// SavedAddress is a delivery address stored on a user profile.
type SavedAddress struct {
	ID        uuid.UUID
	Label     string // e.g. "Home", "Office".
	FullName  string
	Street    string
	Apartment string
	City      string
	State     string
	ZipCode   string
	Phone     string
	IsDefault bool
}

// Format renders the address on a single line.
func (a *SavedAddress) Format() string {
	parts := []string{a.FullName, a.Street}
	if a.Apartment != "" {
		parts = append(parts, a.Apartment)
	}
	parts = append(parts, a.City, a.State+" "+a.ZipCode)

	return strings.Join(parts, ", ")
}

// AddAddress stores a new address. The first address always becomes the
// default, and an address added as default takes the flag from the others.
func (u *User) AddAddress(addr *SavedAddress) {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	if len(u.Addresses) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		for _, a := range u.Addresses {
			a.IsDefault = false
		}
	}
	u.Addresses = append(u.Addresses, addr)
}

// FindAddress returns the address with the given id.
func (u *User) FindAddress(id uuid.UUID) (*SavedAddress, bool) {
	for _, a := range u.Addresses {
		if a.ID == id {
			return a, true
		}
	}

	return nil, false
}

// DefaultAddress returns the default address, if any.
func (u *User) DefaultAddress() (*SavedAddress, bool) {
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}

	return nil, false
}

// SetDefaultAddress flags id as the default and clears every other address.
func (u *User) SetDefaultAddress(id uuid.UUID) bool {
	if _, ok := u.FindAddress(id); !ok {
		return false
	}
	for _, a := range u.Addresses {
		a.IsDefault = a.ID == id
	}

	return true
}

// RemoveAddress deletes an address. When the default goes, the first
// remaining address is promoted.
func (u *User) RemoveAddress(id uuid.UUID) bool {
	for i, a := range u.Addresses {
		if a.ID != id {
			continue
		}
		u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
		if a.IsDefault && len(u.Addresses) > 0 {
			u.Addresses[0].IsDefault = true
		}

		return true
	}

	return false
}
