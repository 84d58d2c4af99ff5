package handler

import (
	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WishlistHandler manages favourite drinks.
type WishlistHandler struct {
	wishlistUC usecase.WishlistUsecase
}

// NewWishlistHandler is the constructor for WishlistHandler.
func NewWishlistHandler(wishlistUC usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{wishlistUC: wishlistUC}
}

// List returns the wishlisted drinks.
func (h *WishlistHandler) List(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	items, err := h.wishlistUC.List(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toItemResponses(items))
}

// Add lists a drink. Adding twice is not an error.
func (h *WishlistHandler) Add(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	itemID, ok := intParam(c, "itemId")
	if !ok {
		return response.InvalidID(c, "item ID")
	}

	if err := h.wishlistUC.Add(c.Request().Context(), sessionID, itemID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]any{"item_id": itemID, "wishlisted": true})
}

// Remove unlists a drink.
func (h *WishlistHandler) Remove(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	itemID, ok := intParam(c, "itemId")
	if !ok {
		return response.InvalidID(c, "item ID")
	}

	if err := h.wishlistUC.Remove(c.Request().Context(), sessionID, itemID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]any{"item_id": itemID, "wishlisted": false})
}

// Toggle flips whether a drink is listed.
func (h *WishlistHandler) Toggle(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	itemID, ok := intParam(c, "itemId")
	if !ok {
		return response.InvalidID(c, "item ID")
	}

	listed, err := h.wishlistUC.Toggle(c.Request().Context(), sessionID, itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, map[string]any{"item_id": itemID, "wishlisted": listed})
}
