package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/repository"
)

func TestNew_EmbeddedMenu(t *testing.T) {
	ctx := context.Background()
	c, err := New()
	require.NoError(t, err)

	items, err := c.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 20)

	espresso, err := c.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", espresso.Name)
	assert.Equal(t, "5.25", espresso.Price.StringFixed(2))
	assert.False(t, espresso.IsCold())

	coldBrew, err := c.GetItem(ctx, 8)
	require.NoError(t, err)
	assert.True(t, coldBrew.IsCold())

	for _, item := range items {
		want := 4.50 + float64(item.ID%5)*0.75
		got, _ := item.Price.Float64()
		assert.InDelta(t, want, got, 0.0001, "item %d", item.ID)
	}
}

func TestCatalog_LookupsAndCategories(t *testing.T) {
	ctx := context.Background()
	c, err := New()
	require.NoError(t, err)

	_, err = c.GetItem(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	iced, err := c.ListItemsByCategory(ctx, entity.CategoryIced)
	require.NoError(t, err)
	assert.Len(t, iced, 4)

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{
		entity.CategoryEspresso, entity.CategorySpecialty, entity.CategoryIced, entity.CategoryChristmas,
	}, categories)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c, err := New()
	require.NoError(t, err)

	item, err := c.GetItem(ctx, 1)
	require.NoError(t, err)
	item.TastingNotes[0] = "Mutated"

	again, err := c.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bold", again.TastingNotes[0])
}

func TestParse_RejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate id", "items:\n  - {id: 1, name: A, category: Iced, price: \"1\"}\n  - {id: 1, name: B, category: Iced, price: \"1\"}\n"},
		{"bad price", "items:\n  - {id: 1, name: A, category: Iced, price: abc}\n"},
		{"unknown category", "items:\n  - {id: 1, name: A, category: Tea, price: \"1\"}\n"},
		{"not yaml", "items: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
