package usecase

import (
	"context"

	"brewhouse/internal/domain/entity"
)

// CatalogUsecase reads the product list.
type CatalogUsecase interface {
	// ListItems returns every item, or only those of category when it is not empty.
	ListItems(ctx context.Context, category string) ([]entity.Item, error)
	GetItem(ctx context.Context, id int) (entity.Item, error)
	Categories(ctx context.Context) ([]entity.Category, error)
}
