package impl

import (
	"context"
	"strings"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type catalogService struct {
	catalog repository.CatalogRepository
}

// NewCatalogService creates the read-only catalog use case.
func NewCatalogService(catalog repository.CatalogRepository) usecase.CatalogUsecase {
	return &catalogService{catalog: catalog}
}

func (srv *catalogService) ListItems(ctx context.Context, category string) ([]entity.Item, error) {
	if strings.TrimSpace(category) == "" {
		return srv.catalog.ListItems(ctx)
	}

	for _, c := range []entity.Category{entity.CategoryEspresso, entity.CategorySpecialty, entity.CategoryIced, entity.CategoryChristmas} {
		if strings.EqualFold(c.String(), strings.TrimSpace(category)) {
			return srv.catalog.ListItemsByCategory(ctx, c)
		}
	}

	return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category " + category)
}

func (srv *catalogService) GetItem(ctx context.Context, id int) (entity.Item, error) {
	return getCatalogItem(ctx, srv.catalog, id)
}

func (srv *catalogService) Categories(ctx context.Context) ([]entity.Category, error) {
	return srv.catalog.Categories(ctx)
}

func getCatalogItem(ctx context.Context, catalog repository.CatalogRepository, id int) (entity.Item, error) {
	item, err := catalog.GetItem(ctx, id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return entity.Item{}, errors.Wrapf(domainerrors.ErrItemNotFound, "item %d", id)
	}
	if err != nil {
		return entity.Item{}, errors.Wrap(err, "failed to get item")
	}

	return item, nil
}
