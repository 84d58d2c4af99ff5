package impl

import (
	"strings"

	"github.com/shopspring/decimal"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type fulfillmentDetails struct {
	address string
	vehicle string
}

// resolveFulfillment checks the details the chosen method needs. Delivery
// falls back to the user's default address.
func resolveFulfillment(user *entity.User, input usecase.PlaceOrderInput) (fulfillmentDetails, error) {
	switch input.Method {
	case entity.FulfillmentDelivery:
		if input.AddressID != nil {
			if user == nil {
				return fulfillmentDetails{}, errors.Wrap(domainerrors.ErrAddressNotFound, "saved addresses need a login")
			}
			addr, ok := user.FindAddress(*input.AddressID)
			if !ok {
				return fulfillmentDetails{}, errors.Wrap(domainerrors.ErrAddressNotFound, "delivery address")
			}

			return fulfillmentDetails{address: addr.Format()}, nil
		}
		if input.Delivery == nil {
			if user != nil {
				if addr, ok := user.DefaultAddress(); ok {
					return fulfillmentDetails{address: addr.Format()}, nil
				}
			}

			return fulfillmentDetails{}, domainerrors.ErrValidationFailed.WithDetails("delivery address is required")
		}
		if err := validate.Struct(input.Delivery); err != nil {
			return fulfillmentDetails{}, validationError(err)
		}
		addr := entity.SavedAddress{
			FullName:  input.Delivery.FullName,
			Street:    input.Delivery.Street,
			Apartment: input.Delivery.Apartment,
			City:      input.Delivery.City,
			State:     input.Delivery.State,
			ZipCode:   input.Delivery.ZipCode,
		}

		return fulfillmentDetails{address: addr.Format()}, nil

	case entity.FulfillmentDriveThru:
		if input.Vehicle == nil {
			return fulfillmentDetails{}, domainerrors.ErrValidationFailed.WithDetails("vehicle details are required")
		}
		if err := validate.Struct(input.Vehicle); err != nil {
			return fulfillmentDetails{}, validationError(err)
		}

		return fulfillmentDetails{vehicle: strings.TrimSpace(input.Vehicle.Color + " " + input.Vehicle.Model)}, nil

	default:
		return fulfillmentDetails{}, nil
	}
}

// resolvePayment picks the card to charge, falling back to the default saved
// card. A zero total needs no card. When a typed-in card should be saved, it
// is returned for the caller to store.
func resolvePayment(user *entity.User, input usecase.PlaceOrderInput, total decimal.Decimal) (service.PaymentRequest, *entity.SavedCard, error) {
	if !total.IsPositive() {
		return service.PaymentRequest{}, nil, nil
	}

	switch {
	case input.CardID != nil:
		if user == nil {
			return service.PaymentRequest{}, nil, errors.Wrap(domainerrors.ErrCardNotFound, "saved cards need a login")
		}
		card, ok := user.FindCard(*input.CardID)
		if !ok {
			return service.PaymentRequest{}, nil, errors.Wrap(domainerrors.ErrCardNotFound, "payment card")
		}
		id := card.ID

		return service.PaymentRequest{CardID: &id, LastFour: card.LastFour}, nil, nil

	case input.Card != nil:
		if err := validate.Struct(input.Card); err != nil {
			return service.PaymentRequest{}, nil, validationError(err)
		}
		card, err := entity.NewSavedCard(input.Card.Number, input.Card.Expiry, input.Card.HolderName)
		if err != nil {
			return service.PaymentRequest{}, nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}

		var toSave *entity.SavedCard
		if input.Card.Save && user != nil {
			toSave = card
		}

		return service.PaymentRequest{LastFour: card.LastFour}, toSave, nil

	default:
		if user != nil {
			for _, card := range user.Cards {
				if card.IsDefault {
					id := card.ID

					return service.PaymentRequest{CardID: &id, LastFour: card.LastFour}, nil, nil
				}
			}
		}

		return service.PaymentRequest{}, nil, domainerrors.ErrValidationFailed.WithDetails("payment details are required")
	}
}
