package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(id int, price string, category Category) Item {
	return Item{
		ID:           id,
		Name:         "Test Drink",
		Category:     category,
		Price:        decimal.RequireFromString(price),
		TastingNotes: []string{"Bold"},
	}
}

func TestNewQuickAddLine_Defaults(t *testing.T) {
	line := NewQuickAddLine(testItem(1, "4.50", CategoryEspresso))

	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, SizeMedium, line.Size)
	assert.Equal(t, MilkWhole, line.Milk)
	assert.Equal(t, 50, line.Sweetness)
	assert.Equal(t, IceRegular, line.Ice)
	assert.NoError(t, line.Validate())
}

func TestCartLine_Pricing(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		size     Size
		quantity int
		want     string
	}{
		{"small keeps price", "4.50", SizeSmall, 1, "4.5"},
		{"medium multiplies by 1.25", "4.50", SizeMedium, 1, "5.625"},
		{"large multiplies by 1.5", "5.00", SizeLarge, 2, "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := NewQuickAddLine(testItem(1, tt.price, CategoryEspresso))
			line.Size = tt.size
			line.Quantity = tt.quantity

			assert.True(t, decimal.RequireFromString(tt.want).Equal(line.LineTotal()), "got %s", line.LineTotal())
		})
	}
}

func TestCartLine_Validate(t *testing.T) {
	base := NewQuickAddLine(testItem(1, "4.50", CategoryEspresso))

	tests := []struct {
		name   string
		mutate func(*CartLine)
		want   error
	}{
		{"zero quantity", func(l *CartLine) { l.Quantity = 0 }, ErrInvalidQuantity},
		{"unknown size", func(l *CartLine) { l.Size = "XL" }, ErrInvalidSize},
		{"unknown milk", func(l *CartLine) { l.Milk = "soy" }, ErrInvalidMilk},
		{"sweetness above range", func(l *CartLine) { l.Sweetness = 101 }, ErrInvalidSweetness},
		{"unknown ice", func(l *CartLine) { l.Ice = "crushed" }, ErrInvalidIce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := base
			tt.mutate(&line)
			assert.ErrorIs(t, line.Validate(), tt.want)
		})
	}
}

func TestCart_AddNeverMerges(t *testing.T) {
	cart := &Cart{}
	line := NewQuickAddLine(testItem(1, "4.50", CategoryEspresso))

	require.NoError(t, cart.AddLine(line))
	require.NoError(t, cart.AddLine(line))

	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Count())
	assert.True(t, decimal.RequireFromString("11.25").Equal(cart.Total()))
}

func TestCart_RemoveLineOutOfRangeIsNoop(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddLine(NewQuickAddLine(testItem(1, "4.50", CategoryEspresso))))

	assert.False(t, cart.RemoveLine(5))
	assert.False(t, cart.RemoveLine(-1))
	assert.Len(t, cart.Lines, 1)

	assert.True(t, cart.RemoveLine(0))
	assert.True(t, cart.IsEmpty())
}

func TestCart_UpdateLine(t *testing.T) {
	cart := &Cart{}
	line := NewQuickAddLine(testItem(1, "4.50", CategoryEspresso))
	require.NoError(t, cart.AddLine(line))

	line.Quantity = 3
	updated, err := cart.UpdateLine(0, line)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 3, cart.Count())

	line.Quantity = 0
	updated, err = cart.UpdateLine(0, line)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.False(t, updated)
	assert.Equal(t, 3, cart.Count())

	line.Quantity = 2
	updated, err = cart.UpdateLine(4, line)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Equal(t, 3, cart.Count())
}

func TestCart_SnapshotIsDetached(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddLine(NewQuickAddLine(testItem(1, "4.50", CategoryEspresso))))

	snapshot := cart.Snapshot()
	cart.Lines[0].Quantity = 9
	cart.Lines[0].Item.TastingNotes[0] = "Changed"
	cart.Clear()

	require.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Quantity)
	assert.Equal(t, "Bold", snapshot[0].Item.TastingNotes[0])
	assert.True(t, cart.IsEmpty())
}
