// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/shopspring/decimal"
)

// Category groups catalog items on the menu.
type Category string

const (
	// CategoryEspresso covers the classic espresso bar drinks.
	CategoryEspresso Category = "Espresso"
	// CategorySpecialty covers house specialties.
	CategorySpecialty Category = "Specialty"
	// CategoryIced covers drinks served cold.
	CategoryIced Category = "Iced"
	// CategoryChristmas covers the seasonal holiday menu.
	CategoryChristmas Category = "Christmas"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a known menu category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEspresso, CategorySpecialty, CategoryIced, CategoryChristmas:
		return true
	default:
		return false
	}
}

// IsCold reports whether drinks in this category are served cold.
func (c Category) IsCold() bool {
	return c == CategoryIced
}

// Item is a read-only catalog entry.
type Item struct {
	ID           int             // Catalog identifier.
	Name         string          // Display name.
	Category     Category        // Menu category, which also decides the hot/cold classification.
	Price        decimal.Decimal // Unit price before the size multiplier.
	Description  string          // Marketing copy shown on the product page.
	TastingNotes []string        // Short flavour descriptors.
	Ingredients  []string        // Ingredient list.
	Image        string          // Image path relative to the asset host.
}

// IsCold reports whether the item is taxed as a cold beverage.
func (i Item) IsCold() bool {
	return i.Category.IsCold()
}

// Clone returns a copy of the item that shares no slices with the receiver.
func (i Item) Clone() Item {
	clone := i
	if i.TastingNotes != nil {
		clone.TastingNotes = append([]string(nil), i.TastingNotes...)
	}
	if i.Ingredients != nil {
		clone.Ingredients = append([]string(nil), i.Ingredients...)
	}

	return clone
}
