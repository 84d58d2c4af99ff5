package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"brewhouse/config"
	deliverycontext "brewhouse/internal/delivery/context"
	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type orderService struct {
	sessionRepo repository.SessionRepository
	orderRepo   repository.OrderRepository
	qrService   service.QRCodeService
	publisher   service.EventPublisher
	etaStep     int
	batchSize   int
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	SessionRepo repository.SessionRepository
	OrderRepo   repository.OrderRepository
	QRService   service.QRCodeService
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService creates the order history and tracking use case.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	tracking := config.DefaultTracking()
	if params.Config != nil && params.Config.Tracking != nil {
		tracking = params.Config.Tracking
	}

	return &orderService{
		sessionRepo: params.SessionRepo,
		orderRepo:   params.OrderRepo,
		qrService:   params.QRService,
		publisher:   params.Publisher,
		etaStep:     tracking.ETAStepMinutes,
		batchSize:   tracking.MaxOrdersPerTick,
		logger:      params.Logger,
	}
}

func (srv *orderService) List(ctx context.Context, sessionID uuid.UUID) ([]*entity.Order, error) {
	session, err := findSession(ctx, srv.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}

	var orders []*entity.Order
	if session.IsAuthenticated() {
		orders, err = srv.orderRepo.ListByUser(ctx, *session.UserID)
	} else {
		orders, err = srv.orderRepo.ListBySession(ctx, sessionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// Get returns an order the session placed or its user owns. Anything else is not found.
func (srv *orderService) Get(ctx context.Context, sessionID, orderID uuid.UUID) (*entity.Order, error) {
	session, err := findSession(ctx, srv.sessionRepo, sessionID)
	if err != nil {
		return nil, err
	}

	order, err := srv.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	owned := order.SessionID == session.ID ||
		(session.UserID != nil && order.UserID != nil && *session.UserID == *order.UserID)
	if !owned {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order belongs to another customer")
	}

	return order, nil
}

func (srv *orderService) Track(ctx context.Context, sessionID, orderID uuid.UUID) (*usecase.TrackingOutput, error) {
	order, err := srv.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}

	return &usecase.TrackingOutput{
		Order:       order,
		Steps:       order.TrackingSteps(),
		StatusLabel: order.StatusLabel(),
	}, nil
}

// PickupQR renders the code scanned at the counter. Delivery orders have none.
func (srv *orderService) PickupQR(ctx context.Context, sessionID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.Get(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}
	if order.FulfillmentMethod == entity.FulfillmentDelivery {
		return nil, domainerrors.ErrNotFound.WithDetails("delivery orders have no pickup code")
	}

	png, err := srv.qrService.GenerateOrderQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render pickup code")
	}

	return png, nil
}

func (srv *orderService) Tick(ctx context.Context, orderID uuid.UUID) (bool, error) {
	order, err := srv.find(ctx, orderID)
	if err != nil {
		return false, err
	}

	return srv.advance(ctx, order)
}

func (srv *orderService) AdvanceActive(ctx context.Context) (int, error) {
	orders, err := srv.orderRepo.ListActive(ctx, srv.batchSize)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list active orders")
	}

	moved := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return moved, ctx.Err()
		}

		ok, err := srv.advance(ctx, order)
		if errors.Is(err, domainerrors.ErrOrderStatusConflict) {
			loggerFor(ctx, srv.logger).Debug("Order advanced elsewhere", slog.String("order_id", order.ID.String()))

			continue
		}
		if err != nil {
			return moved, err
		}
		if ok {
			moved++
		}
	}

	return moved, nil
}

// advance moves the order one step with a compare-and-swap on the stored status.
func (srv *orderService) advance(ctx context.Context, order *entity.Order) (bool, error) {
	from := order.Status
	if !order.Advance(srv.etaStep) {
		return false, nil
	}

	err := srv.orderRepo.UpdateStatus(ctx, order, from)
	if errors.Is(err, repository.ErrOrderStatusMismatch) {
		return false, errors.Wrap(domainerrors.ErrOrderStatusConflict, "advance order")
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to update order status")
	}

	event := &service.OrderEvent{
		RequestID:         deliverycontext.GetRequestIDFromContext(ctx),
		Type:              service.EventOrderStatusChanged,
		OrderID:           order.ID.String(),
		SessionID:         order.SessionID.String(),
		Status:            order.Status.String(),
		PreviousStatus:    from.String(),
		FulfillmentMethod: order.FulfillmentMethod.String(),
		Total:             order.Total.StringFixed(2),
		OccurredAt:        time.Now().UTC(),
	}
	if order.UserID != nil {
		event.UserID = order.UserID.String()
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		loggerFor(ctx, srv.logger).Error("Failed to publish status event", slog.String("order_id", event.OrderID), slog.Any("error", err))
	}

	return true, nil
}

func (srv *orderService) find(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}
