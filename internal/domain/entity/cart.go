package entity

import (
	"github.com/shopspring/decimal"
)

// Size is the cup size of a cart line.
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

var sizeMultipliers = map[Size]decimal.Decimal{
	SizeSmall:  decimal.NewFromInt(1),
	SizeMedium: decimal.RequireFromString("1.25"),
	SizeLarge:  decimal.RequireFromString("1.5"),
}

// IsValid checks if the Size is one of S, M, L.
func (s Size) IsValid() bool {
	_, ok := sizeMultipliers[s]
	return ok
}

// Multiplier returns the price multiplier of the size. Unknown sizes price as small.
func (s Size) Multiplier() decimal.Decimal {
	if m, ok := sizeMultipliers[s]; ok {
		return m
	}

	return sizeMultipliers[SizeSmall]
}

// Milk is the milk choice of a cart line.
type Milk string

const (
	MilkWhole  Milk = "whole"
	MilkOat    Milk = "oat"
	MilkAlmond Milk = "almond"
	MilkNone   Milk = "none"
)

// IsValid checks if the Milk is a known choice.
func (m Milk) IsValid() bool {
	switch m {
	case MilkWhole, MilkOat, MilkAlmond, MilkNone:
		return true
	default:
		return false
	}
}

// Ice is the ice level of a cart line.
type Ice string

const (
	IceNone    Ice = "none"
	IceLight   Ice = "light"
	IceRegular Ice = "regular"
	IceExtra   Ice = "extra"
)

// IsValid checks if the Ice is a known level.
func (i Ice) IsValid() bool {
	switch i {
	case IceNone, IceLight, IceRegular, IceExtra:
		return true
	default:
		return false
	}
}

// Quick add defaults.
const (
	DefaultSize      = SizeMedium
	DefaultMilk      = MilkWhole
	DefaultSweetness = 50
	DefaultIce       = IceRegular
)

// CartLine is one configured, quantity-bearing entry in a cart. The item is
// held by value so later catalog reads never alter a line already in the cart.
type CartLine struct {
	Item      Item // Snapshot of the catalog item.
	Quantity  int  // Always >= 1.
	Size      Size
	Milk      Milk
	Sweetness int // Percentage, 0-100.
	Ice       Ice
}

// NewQuickAddLine builds a single-quantity line with the default customization.
func NewQuickAddLine(item Item) CartLine {
	return CartLine{
		Item:      item.Clone(),
		Quantity:  1,
		Size:      DefaultSize,
		Milk:      DefaultMilk,
		Sweetness: DefaultSweetness,
		Ice:       DefaultIce,
	}
}

// Validate checks the line against the closed set of customization values.
func (l CartLine) Validate() error {
	switch {
	case l.Quantity < 1:
		return ErrInvalidQuantity
	case !l.Size.IsValid():
		return ErrInvalidSize
	case !l.Milk.IsValid():
		return ErrInvalidMilk
	case l.Sweetness < 0 || l.Sweetness > 100:
		return ErrInvalidSweetness
	case !l.Ice.IsValid():
		return ErrInvalidIce
	}

	return nil
}

// UnitPrice is the item price scaled by the size multiplier.
func (l CartLine) UnitPrice() decimal.Decimal {
	return l.Item.Price.Mul(l.Size.Multiplier())
}

// LineTotal is the unit price times the quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone returns a deep copy of the line.
func (l CartLine) Clone() CartLine {
	clone := l
	clone.Item = l.Item.Clone()

	return clone
}

// Cart is the ordered sequence of lines held by a session. Order is insertion
// order and carries no meaning beyond display.
type Cart struct {
	Lines []CartLine
}

// AddLine appends a line. Identical configurations are never merged.
func (c *Cart) AddLine(line CartLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	c.Lines = append(c.Lines, line.Clone())

	return nil
}

// RemoveLine removes the line at index. It reports false and leaves the cart
// untouched when the index is out of range.
func (c *Cart) RemoveLine(index int) bool {
	if index < 0 || index >= len(c.Lines) {
		return false
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)

	return true
}

// UpdateLine replaces the line at index wholesale. An out of range index is a
// no-op reported as false; an invalid replacement is rejected with an error.
func (c *Cart) UpdateLine(index int, line CartLine) (bool, error) {
	if err := line.Validate(); err != nil {
		return false, err
	}
	if index < 0 || index >= len(c.Lines) {
		return false, nil
	}
	c.Lines[index] = line.Clone()

	return true, nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total is the sum of all line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.LineTotal())
	}

	return total
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}

	return count
}

// Snapshot returns a deep copy of the lines, detached from the live cart.
func (c *Cart) Snapshot() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]CartLine, len(c.Lines))
	for i, line := range c.Lines {
		lines[i] = line.Clone()
	}

	return lines
}
