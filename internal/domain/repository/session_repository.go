package repository

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// SessionRepository persists storefront sessions.
type SessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, session *entity.Session) error
}

// CartRepository persists the cart lines of a session. Save replaces the
// whole cart, so callers always read, modify and write back the full ledger.
type CartRepository interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*entity.Cart, error)
	Save(ctx context.Context, sessionID uuid.UUID, cart *entity.Cart) error
}

// WishlistRepository persists the favourited catalog item ids of a session.
type WishlistRepository interface {
	// Add is idempotent.
	Add(ctx context.Context, sessionID uuid.UUID, itemID int) error
	// Remove reports whether an entry was deleted.
	Remove(ctx context.Context, sessionID uuid.UUID, itemID int) (bool, error)
	Contains(ctx context.Context, sessionID uuid.UUID, itemID int) (bool, error)
	// ListItemIDs returns ids in the order they were added.
	ListItemIDs(ctx context.Context, sessionID uuid.UUID) ([]int, error)
}
