package handler

import (
	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the drink menu.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(catalogUC usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// ListItems returns the menu, filtered by the optional category query parameter.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	items, err := h.catalogUC.ListItems(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toItemResponses(items))
}

// GetItem returns one drink.
func (h *CatalogHandler) GetItem(c echo.Context) error {
	id, ok := intParam(c, "id")
	if !ok {
		return response.InvalidID(c, "item ID")
	}

	item, err := h.catalogUC.GetItem(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toItemResponse(item))
}

// Categories lists the menu categories in display order.
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalogUC.Categories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, categories)
}
