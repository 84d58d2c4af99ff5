package handler

import (
	"log/slog"

	"brewhouse/internal/delivery/api/response"
	"brewhouse/internal/domain/entity"
	"brewhouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler prices the cart and places orders.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// DiscountRequest represents the request body for applying a promo code
type DiscountRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// DeliveryRequest is a typed-in delivery address.
type DeliveryRequest struct {
	FullName  string `json:"full_name"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
}

// VehicleRequest identifies a car at the drive-thru.
type VehicleRequest struct {
	Model string `json:"model"`
	Color string `json:"color"`
}

// CardRequest is a typed-in payment card.
type CardRequest struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	ZipCode    string `json:"zip_code"`
	HolderName string `json:"holder_name"`
	Save       bool   `json:"save"`
}

// PlaceOrderRequest represents the request body for checking out
type PlaceOrderRequest struct {
	Method        entity.FulfillmentMethod `json:"method" validate:"required"`
	UseCredits    bool                     `json:"use_credits"`
	AddressID     *uuid.UUID               `json:"address_id"`
	Delivery      *DeliveryRequest         `json:"delivery"`
	Vehicle       *VehicleRequest          `json:"vehicle"`
	CardID        *uuid.UUID               `json:"card_id"`
	Card          *CardRequest             `json:"card"`
	ExpectedTotal *decimal.Decimal         `json:"expected_total"`
}

func (r *PlaceOrderRequest) input() usecase.PlaceOrderInput {
	in := usecase.PlaceOrderInput{
		Method:        r.Method,
		UseCredits:    r.UseCredits,
		AddressID:     r.AddressID,
		CardID:        r.CardID,
		ExpectedTotal: r.ExpectedTotal,
	}
	if r.Delivery != nil {
		d := usecase.DeliveryDetails(*r.Delivery)
		in.Delivery = &d
	}
	if r.Vehicle != nil {
		v := usecase.VehicleDetails(*r.Vehicle)
		in.Vehicle = &v
	}
	if r.Card != nil {
		card := usecase.CardDetails(*r.Card)
		in.Card = &card
	}

	return in
}

// Quote prices the cart for ?method= and ?use_credits=.
func (h *CheckoutHandler) Quote(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var method string
	var useCredits bool
	if err := echo.QueryParamsBinder(c).
		String("method", &method).
		Bool("use_credits", &useCredits).
		BindError(); err != nil {
		return response.BindingError(c, "Invalid quote parameters")
	}

	quote, err := h.checkoutUC.Quote(c.Request().Context(), sessionID, usecase.QuoteInput{
		Method:     entity.FulfillmentMethod(method),
		UseCredits: useCredits,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, toQuoteResponse(quote))
}

type discountResponse struct {
	Valid      bool   `json:"valid"`
	Code       string `json:"code"`
	Percentage int    `json:"percentage"`
}

// ApplyDiscount stores a promo code on the session. An unknown code answers
// 200 with valid=false.
func (h *CheckoutHandler) ApplyDiscount(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req DiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid discount input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.checkoutUC.ApplyDiscount(c.Request().Context(), sessionID, req.Code)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, discountResponse(result))
}

// RemoveDiscount clears the promo code.
func (h *CheckoutHandler) RemoveDiscount(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.checkoutUC.RemoveDiscount(c.Request().Context(), sessionID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Discount removed")
}

// PlaceOrder checks out the cart.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	sessionID, err := currentSessionID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.checkoutUC.PlaceOrder(c.Request().Context(), sessionID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, toOrderResponse(order))
}
