package impl

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type rewardsService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
}

// NewRewardsService creates the rewards use case.
func NewRewardsService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, orderRepo repository.OrderRepository) usecase.RewardsUsecase {
	return &rewardsService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
	}
}

func (srv *rewardsService) Get(ctx context.Context, sessionID uuid.UUID) (*usecase.RewardsOutput, error) {
	user, err := requireSessionUser(ctx, srv.sessionRepo, srv.userRepo, sessionID)
	if err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	history := make([]usecase.CreditHistoryEntry, 0, len(orders))
	for _, order := range orders {
		if order.CreditsEarned == 0 && order.CreditsUsed == 0 {
			continue
		}
		history = append(history, usecase.CreditHistoryEntry{
			OrderID:   order.ID,
			Earned:    order.CreditsEarned,
			Used:      order.CreditsUsed,
			CreatedAt: order.CreatedAt,
		})
	}

	tier, next := entity.TierFor(user.Credits)

	return &usecase.RewardsOutput{
		Credits:  user.Credits,
		Tier:     tier,
		NextTier: next,
		Progress: entity.TierProgress(user.Credits),
		History:  history,
	}, nil
}
