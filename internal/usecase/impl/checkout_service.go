package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"brewhouse/config"
	deliverycontext "brewhouse/internal/delivery/context"
	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/pricing"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type checkoutService struct {
	txManager   repository.TransactionManager
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	cartRepo    repository.CartRepository
	engine      *pricing.Engine
	payments    service.PaymentGateway
	publisher   service.EventPublisher
	initialETA  int
	logger      *slog.Logger

	// inFlight holds the ids of sessions with a checkout in progress.
	inFlight sync.Map
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	SessionRepo repository.SessionRepository
	UserRepo    repository.UserRepository
	CartRepo    repository.CartRepository
	Engine      *pricing.Engine
	Payments    service.PaymentGateway
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCheckoutService creates the checkout use case.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	tracking := config.DefaultTracking()
	if params.Config != nil && params.Config.Tracking != nil {
		tracking = params.Config.Tracking
	}

	return &checkoutService{
		txManager:   params.TxManager,
		sessionRepo: params.SessionRepo,
		userRepo:    params.UserRepo,
		cartRepo:    params.CartRepo,
		engine:      params.Engine,
		payments:    params.Payments,
		publisher:   params.Publisher,
		initialETA:  tracking.InitialETA,
		logger:      params.Logger,
	}
}

// quoteState is everything a quote was computed from.
type quoteState struct {
	session *entity.Session
	user    *entity.User
	cart    *entity.Cart
}

func (srv *checkoutService) load(ctx context.Context, sessions repository.SessionRepository, users repository.UserRepository, carts repository.CartRepository, sessionID uuid.UUID) (*quoteState, error) {
	session, err := findSession(ctx, sessions, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := findSessionUser(ctx, users, session)
	if err != nil {
		return nil, err
	}
	cart, err := carts.Load(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return &quoteState{session: session, user: user, cart: cart}, nil
}

func (srv *checkoutService) price(state *quoteState, method entity.FulfillmentMethod, useCredits bool) pricing.Breakdown {
	in := pricing.Input{
		Lines:         state.cart.Lines,
		Method:        method,
		Discount:      srv.engine.DiscountFor(state.session.DiscountCode),
		UseCredits:    useCredits,
		IsGuest:       state.session.IsGuest,
		Authenticated: state.user != nil,
	}
	if state.user != nil {
		in.CreditBalance = state.user.Credits
	}

	return srv.engine.Quote(in)
}

func (srv *checkoutService) Quote(ctx context.Context, sessionID uuid.UUID, input usecase.QuoteInput) (*usecase.QuoteOutput, error) {
	method := input.Method
	if method == "" {
		method = entity.FulfillmentDelivery
	}
	if !method.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown fulfillment method " + method.String())
	}

	state, err := srv.load(ctx, srv.sessionRepo, srv.userRepo, srv.cartRepo, sessionID)
	if err != nil {
		return nil, err
	}

	out := &usecase.QuoteOutput{
		Breakdown: srv.price(state, method, input.UseCredits),
		Discount:  srv.engine.DiscountFor(state.session.DiscountCode),
	}
	if state.user != nil && !state.session.IsGuest {
		out.CreditBalance = state.user.Credits
		out.CanUseCredits = state.user.Credits > 0
	}

	return out, nil
}

func (srv *checkoutService) ApplyDiscount(ctx context.Context, sessionID uuid.UUID, code string) (pricing.CodeValidation, error) {
	var result pricing.CodeValidation
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		session, err := findSession(ctx, repos.SessionRepo(), sessionID)
		if err != nil {
			return err
		}
		if srv.engine.DiscountFor(session.DiscountCode).Applied() {
			return errors.Wrap(domainerrors.ErrDiscountAlreadyApplied, "apply discount")
		}

		result = srv.engine.ValidateCode(code)
		if !result.Valid {
			return nil
		}
		session.DiscountCode = result.Code

		return errors.Wrap(repos.SessionRepo().Update(ctx, session), "failed to store discount code")
	})
	if err != nil {
		return pricing.CodeValidation{}, err
	}

	return result, nil
}

func (srv *checkoutService) RemoveDiscount(ctx context.Context, sessionID uuid.UUID) error {
	session, err := findSession(ctx, srv.sessionRepo, sessionID)
	if err != nil {
		return err
	}
	if session.DiscountCode == "" {
		return nil
	}
	session.DiscountCode = ""

	return errors.Wrap(srv.sessionRepo.Update(ctx, session), "failed to clear discount code")
}

// PlaceOrder turns the session's cart into an order. Only one checkout per
// session runs at a time; the rest fail fast with ErrCheckoutInProgress.
func (srv *checkoutService) PlaceOrder(ctx context.Context, sessionID uuid.UUID, input usecase.PlaceOrderInput) (*entity.Order, error) {
	if _, busy := srv.inFlight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, errors.Wrap(domainerrors.ErrCheckoutInProgress, "place order")
	}
	defer srv.inFlight.Delete(sessionID)

	log := loggerFor(ctx, srv.logger).With(slog.String("session_id", sessionID.String()))

	if !input.Method.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown fulfillment method " + input.Method.String())
	}

	state, err := srv.load(ctx, srv.sessionRepo, srv.userRepo, srv.cartRepo, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.session.CanCheckout() {
		return nil, errors.Wrap(domainerrors.ErrLoginRequired, "place order")
	}
	if state.cart.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "place order")
	}

	details, err := resolveFulfillment(state.user, input)
	if err != nil {
		return nil, err
	}

	quote := srv.price(state, input.Method, input.UseCredits)
	if input.ExpectedTotal != nil && !input.ExpectedTotal.Round(2).Equal(quote.GrandTotal.Round(2)) {
		return nil, errors.Wrap(domainerrors.ErrCartChanged, "quoted total is stale")
	}

	payment, saveCard, err := resolvePayment(state.user, input, quote.GrandTotal)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New()
	var reference string
	if quote.GrandTotal.IsPositive() {
		payment.OrderID = orderID
		payment.Amount = quote.GrandTotal
		receipt, err := srv.payments.Authorize(ctx, payment)
		if err != nil {
			log.Warn("Payment failed", slog.Any("error", err))

			return nil, errors.Wrap(err, "payment authorisation failed")
		}
		reference = receipt.Reference
	}

	var order *entity.Order
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		current, err := srv.load(ctx, repos.SessionRepo(), repos.UserRepo(), repos.CartRepo(), sessionID)
		if err != nil {
			return err
		}
		if current.cart.IsEmpty() {
			return errors.Wrap(domainerrors.ErrCartEmpty, "cart emptied during checkout")
		}

		breakdown := srv.price(current, input.Method, input.UseCredits)
		if !breakdown.GrandTotal.Equal(quote.GrandTotal) {
			return errors.Wrap(domainerrors.ErrCartChanged, "total moved during checkout")
		}

		order, err = srv.buildOrder(ctx, repos, current, breakdown, input, details, saveCard)
		if err != nil {
			return err
		}
		order.ID = orderID
		order.PaymentReference = reference

		return srv.commitOrder(ctx, repos, current, order)
	})
	if err != nil {
		log.Error("Checkout failed", slog.Any("error", err), slog.String("payment_reference", reference))

		return nil, err
	}

	log.Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("total", order.Total.StringFixed(2)),
		slog.String("method", order.FulfillmentMethod.String()),
	)
	srv.publish(ctx, order)

	return order, nil
}

// buildOrder spends credits and assembles the order record.
func (srv *checkoutService) buildOrder(
	ctx context.Context,
	repos repository.RepositoryFactory,
	state *quoteState,
	breakdown pricing.Breakdown,
	input usecase.PlaceOrderInput,
	details fulfillmentDetails,
	saveCard *entity.SavedCard,
) (*entity.Order, error) {
	user := state.user
	purchaser := user != nil && !state.session.IsGuest

	creditsUsed := 0
	creditsDiscount := breakdown.CreditsDiscount
	grandTotal := breakdown.GrandTotal
	if purchaser && input.UseCredits && breakdown.CreditsToSpend > 0 {
		if user.SpendCredits(breakdown.CreditsToSpend) {
			creditsUsed = breakdown.CreditsToSpend
		} else {
			loggerFor(ctx, srv.logger).Warn("Credit spend failed, charging without credits",
				slog.String("user_id", user.ID.String()), slog.Int("requested", breakdown.CreditsToSpend))
			creditsDiscount = decimal.Zero
			grandTotal = decimal.Max(decimal.Zero, breakdown.GrandTotal.Add(breakdown.CreditsDiscount))
		}
	}

	creditsEarned := 0
	if purchaser {
		creditsEarned = pricing.CreditsFor(grandTotal)
	}

	order := &entity.Order{
		SessionID:         state.session.ID,
		Lines:             state.cart.Snapshot(),
		Subtotal:          breakdown.Subtotal,
		Tax:               breakdown.Tax,
		DeliveryFee:       breakdown.DeliveryFee,
		Discount:          breakdown.Discount,
		CreditsDiscount:   creditsDiscount,
		Total:             grandTotal,
		DiscountCode:      srv.engine.DiscountFor(state.session.DiscountCode).Code,
		CreditsEarned:     creditsEarned,
		CreditsUsed:       creditsUsed,
		Status:            entity.StatusConfirmed,
		FulfillmentMethod: input.Method,
		IsGuestOrder:      state.session.IsGuest,
		EstimatedMinutes:  srv.initialETA,
		DeliveryAddress:   details.address,
		VehicleInfo:       details.vehicle,
	}
	if purchaser {
		id := user.ID
		order.UserID = &id

		if err := user.EarnCredits(creditsEarned); err != nil {
			return nil, errors.Wrap(err, "failed to credit order")
		}
		if saveCard != nil {
			user.AddCard(saveCard)
		}
		if err := repos.UserRepo().Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to update credit balance")
		}
	}

	return order, nil
}

// commitOrder records the order, clears the cart, notifies and resets the one-shot session state.
func (srv *checkoutService) commitOrder(ctx context.Context, repos repository.RepositoryFactory, state *quoteState, order *entity.Order) error {
	if err := repos.OrderRepo().Create(ctx, order); err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	state.cart.Clear()
	if err := repos.CartRepo().Save(ctx, state.session.ID, state.cart); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	notifications := []*entity.Notification{
		entity.NewNotification(state.session.ID, entity.NotificationOrder,
			"Order Placed!", fmt.Sprintf("Your order #%s is being prepared.", order.ShortID())),
	}
	if order.CreditsEarned > 0 && !order.IsGuestOrder {
		notifications = append(notifications, entity.NewNotification(state.session.ID, entity.NotificationReward,
			"Credits Earned!", fmt.Sprintf("You earned %d credits from this order.", order.CreditsEarned)))
	}
	if err := repos.NotificationRepo().Create(ctx, notifications...); err != nil {
		return errors.Wrap(err, "failed to create order notifications")
	}

	state.session.IsGuest = false
	state.session.DiscountCode = ""

	return errors.Wrap(repos.SessionRepo().Update(ctx, state.session), "failed to reset session")
}

func (srv *checkoutService) publish(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:         deliverycontext.GetRequestIDFromContext(ctx),
		Type:              service.EventOrderPlaced,
		OrderID:           order.ID.String(),
		SessionID:         order.SessionID.String(),
		Status:            order.Status.String(),
		FulfillmentMethod: order.FulfillmentMethod.String(),
		Total:             order.Total.StringFixed(2),
		OccurredAt:        time.Now().UTC(),
	}
	if order.UserID != nil {
		event.UserID = order.UserID.String()
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		loggerFor(ctx, srv.logger).Error("Failed to publish order event", slog.String("order_id", event.OrderID), slog.Any("error", err))
	}
}
