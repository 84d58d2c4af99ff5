package impl_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/usecase"
)

func TestCartService_AddLineUsesQuickAddDefaults(t *testing.T) {
	f := newFixture(t)
	sessionID := f.openSession(t)

	view, err := f.cart.AddLine(context.Background(), sessionID, usecase.AddCartLineInput{ItemID: 5})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)

	line := view.Lines[0]
	assert.Equal(t, 5, line.Item.ID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, entity.SizeMedium, line.Size)
	assert.Equal(t, entity.MilkWhole, line.Milk)
	assert.Equal(t, 50, line.Sweetness)
	assert.Equal(t, entity.IceRegular, line.Ice)
	assert.True(t, decimal.RequireFromString("5.625").Equal(view.Total), view.Total.String())
	assert.Equal(t, 1, view.Count)
}

func TestCartService_IdenticalLinesAreNotMerged(t *testing.T) {
	f := newFixture(t)
	sessionID := f.openSession(t)

	f.addLine(t, sessionID, usecase.AddCartLineInput{ItemID: 1})
	f.addLine(t, sessionID, usecase.AddCartLineInput{ItemID: 1})

	view, err := f.cart.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.Count)
}

func TestCartService_AddLineRejectsUnknownItem(t *testing.T) {
	f := newFixture(t)
	sessionID := f.openSession(t)

	_, err := f.cart.AddLine(context.Background(), sessionID, usecase.AddCartLineInput{ItemID: 999})
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}

func TestCartService_UpdateLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessionID := f.openSession(t)
	f.addLine(t, sessionID, usecase.AddCartLineInput{ItemID: 10})

	sweetness := 0
	view, err := f.cart.UpdateLine(ctx, sessionID, 0, usecase.CartLineOptions{
		Quantity:  2,
		Size:      entity.SizeLarge,
		Milk:      entity.MilkOat,
		Sweetness: &sweetness,
		Ice:       entity.IceExtra,
	})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 10, view.Lines[0].Item.ID)
	assert.Equal(t, entity.MilkOat, view.Lines[0].Milk)
	assert.Equal(t, 0, view.Lines[0].Sweetness)
	assert.True(t, decimal.RequireFromString("13.5").Equal(view.Total), view.Total.String())
	assert.Equal(t, 2, view.Count)

	_, err = f.cart.UpdateLine(ctx, sessionID, 0, usecase.CartLineOptions{Quantity: 0})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCartLine)

	view, err = f.cart.UpdateLine(ctx, sessionID, 7, usecase.CartLineOptions{Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
}

func TestCartService_RemoveLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessionID := f.openSession(t)
	f.addLine(t, sessionID, usecase.AddCartLineInput{ItemID: 1})
	f.addLine(t, sessionID, usecase.AddCartLineInput{ItemID: 2})

	view, err := f.cart.RemoveLine(ctx, sessionID, 5)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 2)

	view, err = f.cart.RemoveLine(ctx, sessionID, 0)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Item.ID)
}

func TestCatalogService_ListItemsByCategoryName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.catalog.ListItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 20)

	iced, err := f.catalog.ListItems(ctx, "iced")
	require.NoError(t, err)
	require.NotEmpty(t, iced)
	for _, item := range iced {
		assert.True(t, item.IsCold())
	}

	_, err = f.catalog.GetItem(ctx, 0)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}
