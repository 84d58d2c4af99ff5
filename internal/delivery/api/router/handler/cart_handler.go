package handler

import (
	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/domain/entity"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CartHandler edits the cart of the current session.
type CartHandler struct {
	cartUC usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(cartUC usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC}
}

// LineOptionsRequest configures a drink. Omitted fields take the quick-add defaults.
type LineOptionsRequest struct {
	Quantity  int         `json:"quantity"`
	Size      entity.Size `json:"size"`
	Milk      entity.Milk `json:"milk"`
	Sweetness *int        `json:"sweetness"`
	Ice       entity.Ice  `json:"ice"`
}

func (r LineOptionsRequest) options() usecase.CartLineOptions {
	return usecase.CartLineOptions{
		Quantity:  r.Quantity,
		Size:      r.Size,
		Milk:      r.Milk,
		Sweetness: r.Sweetness,
		Ice:       r.Ice,
	}
}

// AddLineRequest represents the request body for adding a drink to the cart
type AddLineRequest struct {
	ItemID int `json:"item_id" validate:"required,min=1"`
	LineOptionsRequest
}

// Get returns the cart.
func (h *CartHandler) Get(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	view, err := h.cartUC.Get(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toCartResponse(view))
}

// AddLine appends a configured drink.
func (h *CartHandler) AddLine(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddLineRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid cart line input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	view, err := h.cartUC.AddLine(c.Request().Context(), sessionID, usecase.AddCartLineInput{
		ItemID:          req.ItemID,
		CartLineOptions: req.options(),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toCartResponse(view))
}

// UpdateLine replaces the options of the line at :index.
func (h *CartHandler) UpdateLine(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	index, ok := intParam(c, "index")
	if !ok {
		return response.InvalidID(c, "line index")
	}

	var req LineOptionsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid cart line input")
	}

	view, err := h.cartUC.UpdateLine(c.Request().Context(), sessionID, index, req.options())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toCartResponse(view))
}

// RemoveLine deletes the line at :index.
func (h *CartHandler) RemoveLine(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	index, ok := intParam(c, "index")
	if !ok {
		return response.InvalidID(c, "line index")
	}

	view, err := h.cartUC.RemoveLine(c.Request().Context(), sessionID, index)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toCartResponse(view))
}
