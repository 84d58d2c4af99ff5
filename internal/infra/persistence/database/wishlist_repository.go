package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/model"
)

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a WishlistRepository backed by GORM.
func NewWishlistRepository(db *gorm.DB) repository.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (repo *wishlistRepository) Add(ctx context.Context, sessionID uuid.UUID, itemID int) error {
	entry := &model.WishlistEntryModel{SessionID: sessionID, ItemID: itemID}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to add wishlist entry")
	}

	return nil
}

func (repo *wishlistRepository) Remove(ctx context.Context, sessionID uuid.UUID, itemID int) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("session_id = ? AND item_id = ?", sessionID, itemID).
		Delete(&model.WishlistEntryModel{})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove wishlist entry")
	}

	return result.RowsAffected > 0, nil
}

func (repo *wishlistRepository) Contains(ctx context.Context, sessionID uuid.UUID, itemID int) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.WishlistEntryModel{}).
		Where("session_id = ? AND item_id = ?", sessionID, itemID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check wishlist entry")
	}

	return count > 0, nil
}

func (repo *wishlistRepository) ListItemIDs(ctx context.Context, sessionID uuid.UUID) ([]int, error) {
	var ids []int
	err := repo.db.WithContext(ctx).Model(&model.WishlistEntryModel{}).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("item_id ASC").
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist")
	}

	return ids, nil
}
