package handler

import (
	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// RewardsHandler reports loyalty standing.
type RewardsHandler struct {
	rewardsUC usecase.RewardsUsecase
}

// NewRewardsHandler is the constructor for RewardsHandler.
func NewRewardsHandler(rewardsUC usecase.RewardsUsecase) *RewardsHandler {
	return &RewardsHandler{rewardsUC: rewardsUC}
}

// Get returns credits, tier, progress and credit history.
func (h *RewardsHandler) Get(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	rewards, err := h.rewardsUC.Get(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toRewardsResponse(rewards))
}
