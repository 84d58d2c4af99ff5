package handler

import (
	"log/slog"
	"net/http"

	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves order history and tracking.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// List returns the order history, most recent first.
func (h *OrderHandler) List(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orders, err := h.orderUC.List(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toOrderResponses(orders))
}

// Get returns one order.
func (h *OrderHandler) Get(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "order ID")
	}

	order, err := h.orderUC.Get(c.Request().Context(), sessionID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toOrderResponse(order))
}

// Track returns the order with its timeline.
func (h *OrderHandler) Track(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "order ID")
	}

	tracking, err := h.orderUC.Track(c.Request().Context(), sessionID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toTrackingResponse(tracking))
}

// Advance moves an order one step along its status sequence.
func (h *OrderHandler) Advance(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "order ID")
	}

	ctx := c.Request().Context()
	if _, err := h.orderUC.Get(ctx, sessionID, orderID); err != nil {
		return response.HandleAppError(c, err)
	}
	if _, err := h.orderUC.Tick(ctx, orderID); err != nil {
		return response.HandleAppError(c, err)
	}

	tracking, err := h.orderUC.Track(ctx, sessionID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toTrackingResponse(tracking))
}

// PickupQR renders the pickup code of a pickup or drive-thru order as PNG.
func (h *OrderHandler) PickupQR(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return response.InvalidID(c, "order ID")
	}

	png, err := h.orderUC.PickupQR(c.Request().Context(), sessionID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
