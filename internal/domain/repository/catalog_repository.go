package repository

import (
	"context"
	"errors"

	"brewhouse/internal/domain/entity"
)

// ErrItemNotFound is returned when a catalog id does not exist.
var ErrItemNotFound = errors.New("item not found")

// CatalogRepository is the read-only product list.
type CatalogRepository interface {
	ListItems(ctx context.Context) ([]entity.Item, error)
	GetItem(ctx context.Context, id int) (entity.Item, error)
	ListItemsByCategory(ctx context.Context, category entity.Category) ([]entity.Item, error)
	// Categories returns distinct categories in catalog order.
	Categories(ctx context.Context) ([]entity.Category, error)
}
