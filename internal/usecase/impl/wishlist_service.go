package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type wishlistService struct {
	repo    repository.WishlistRepository
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

// NewWishlistService creates the wishlist use case.
func NewWishlistService(repo repository.WishlistRepository, catalog repository.CatalogRepository, logger *slog.Logger) usecase.WishlistUsecase {
	return &wishlistService{repo: repo, catalog: catalog, logger: logger}
}

// List resolves the stored ids against the catalog. Ids that left the catalog are skipped.
func (srv *wishlistService) List(ctx context.Context, sessionID uuid.UUID) ([]entity.Item, error) {
	ids, err := srv.repo.ListItemIDs(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist")
	}

	items := make([]entity.Item, 0, len(ids))
	for _, id := range ids {
		item, err := srv.catalog.GetItem(ctx, id)
		if errors.Is(err, repository.ErrItemNotFound) {
			loggerFor(ctx, srv.logger).Debug("Skipping unknown wishlist item", slog.Int("item_id", id))

			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve wishlist item")
		}
		items = append(items, item)
	}

	return items, nil
}

func (srv *wishlistService) Add(ctx context.Context, sessionID uuid.UUID, itemID int) error {
	if _, err := getCatalogItem(ctx, srv.catalog, itemID); err != nil {
		return err
	}

	return errors.Wrap(srv.repo.Add(ctx, sessionID, itemID), "failed to add to wishlist")
}

func (srv *wishlistService) Remove(ctx context.Context, sessionID uuid.UUID, itemID int) error {
	_, err := srv.repo.Remove(ctx, sessionID, itemID)

	return errors.Wrap(err, "failed to remove from wishlist")
}

func (srv *wishlistService) Toggle(ctx context.Context, sessionID uuid.UUID, itemID int) (bool, error) {
	removed, err := srv.repo.Remove(ctx, sessionID, itemID)
	if err != nil {
		return false, errors.Wrap(err, "failed to toggle wishlist")
	}
	if removed {
		return false, nil
	}
	if err := srv.Add(ctx, sessionID, itemID); err != nil {
		return false, err
	}

	return true, nil
}
