package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// CreditHistoryEntry is one credit movement derived from an order.
type CreditHistoryEntry struct {
	OrderID   uuid.UUID
	Earned    int
	Used      int
	CreatedAt time.Time
}

// RewardsOutput summarises the loyalty standing of a user.
type RewardsOutput struct {
	Credits  int
	Tier     entity.RewardTier
	NextTier *entity.RewardTier
	Progress int
	History  []CreditHistoryEntry
}

// RewardsUsecase reports the logged-in user's loyalty standing.
type RewardsUsecase interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*RewardsOutput, error)
}
