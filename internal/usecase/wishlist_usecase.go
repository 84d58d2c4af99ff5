package usecase

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// WishlistUsecase manages the favourite drinks of a session.
type WishlistUsecase interface {
	List(ctx context.Context, sessionID uuid.UUID) ([]entity.Item, error)
	Add(ctx context.Context, sessionID uuid.UUID, itemID int) error
	Remove(ctx context.Context, sessionID uuid.UUID, itemID int) error
	// Toggle adds or removes the item and reports whether it is now listed.
	Toggle(ctx context.Context, sessionID uuid.UUID, itemID int) (bool, error)
}
