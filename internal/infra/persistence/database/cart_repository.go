package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/model"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a CartRepository backed by GORM.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// Load returns the session's cart. A session without lines has an empty cart.
func (repo *cartRepository) Load(ctx context.Context, sessionID uuid.UUID) (*entity.Cart, error) {
	var lines []model.CartLineModel
	err := repo.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&lines).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart := &entity.Cart{}
	for i := range lines {
		cart.Lines = append(cart.Lines, toCartLineDomain(&lines[i]))
	}

	return cart, nil
}

// Save replaces every stored line of the session with the cart's lines.
func (repo *cartRepository) Save(ctx context.Context, sessionID uuid.UUID, cart *entity.Cart) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("session_id = ?", sessionID).Delete(&model.CartLineModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}
	if cart == nil || cart.IsEmpty() {
		return nil
	}

	lines := make([]model.CartLineModel, len(cart.Lines))
	for i, line := range cart.Lines {
		lines[i] = model.CartLineModel{
			SessionID: sessionID,
			Position:  i,
			Item:      fromItemDomain(line.Item),
			Quantity:  line.Quantity,
			Size:      string(line.Size),
			Milk:      string(line.Milk),
			Sweetness: line.Sweetness,
			Ice:       string(line.Ice),
		}
	}
	if err := db.Create(&lines).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidCartLine.WithDetails("quantity must be at least 1")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	return nil
}

func toCartLineDomain(data *model.CartLineModel) entity.CartLine {
	return entity.CartLine{
		Item:      toItemDomain(data.Item),
		Quantity:  data.Quantity,
		Size:      entity.Size(data.Size),
		Milk:      entity.Milk(data.Milk),
		Sweetness: data.Sweetness,
		Ice:       entity.Ice(data.Ice),
	}
}

func toItemDomain(data model.ItemSnapshot) entity.Item {
	return entity.Item{
		ID:           data.ID,
		Name:         data.Name,
		Category:     entity.Category(data.Category),
		Price:        data.Price,
		Description:  data.Description,
		TastingNotes: data.TastingNotes,
		Ingredients:  data.Ingredients,
		Image:        data.Image,
	}
}

func fromItemDomain(data entity.Item) model.ItemSnapshot {
	return model.ItemSnapshot{
		ID:           data.ID,
		Name:         data.Name,
		Category:     string(data.Category),
		Price:        data.Price,
		Description:  data.Description,
		TastingNotes: data.TastingNotes,
		Ingredients:  data.Ingredients,
		Image:        data.Image,
	}
}
