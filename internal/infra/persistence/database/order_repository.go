package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/infra/persistence/model"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an OrderRepository backed by GORM.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) withLines(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

// Create inserts the order and its line snapshots.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	orderM := fromOrderDomain(order)
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.withLines(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, repo.withLines(ctx).Where("session_id = ?", sessionID).Order("created_at DESC"))
}

func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(ctx, repo.withLines(ctx).Where("user_id = ?", userID).Order("created_at DESC"))
}

func (repo *orderRepository) ListActive(ctx context.Context, limit int) ([]*entity.Order, error) {
	query := repo.withLines(ctx).Where("status <> ?", entity.StatusDelivered).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	return repo.list(ctx, query)
}

func (repo *orderRepository) list(_ context.Context, query *gorm.DB) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := query.Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// UpdateStatus is a compare-and-swap on the status column, so two tickers can
// never move the same order twice from one observed state.
func (repo *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order, from entity.OrderStatus) error {
	now := time.Now().UTC()
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", order.ID, from).
		Updates(map[string]any{
			"status":            string(order.Status),
			"estimated_minutes": order.EstimatedMinutes,
			"updated_at":        now,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderStatusMismatch
	}
	order.UpdatedAt = now

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:                data.ID,
		SessionID:         data.SessionID,
		UserID:            data.UserID,
		Subtotal:          data.Subtotal,
		Tax:               data.Tax,
		DeliveryFee:       data.DeliveryFee,
		Discount:          data.Discount,
		CreditsDiscount:   data.CreditsDiscount,
		Total:             data.Total,
		DiscountCode:      data.DiscountCode,
		CreditsEarned:     data.CreditsEarned,
		CreditsUsed:       data.CreditsUsed,
		Status:            entity.OrderStatus(data.Status),
		FulfillmentMethod: entity.FulfillmentMethod(data.FulfillmentMethod),
		IsGuestOrder:      data.IsGuestOrder,
		EstimatedMinutes:  data.EstimatedMinutes,
		DeliveryAddress:   data.DeliveryAddress,
		VehicleInfo:       data.VehicleInfo,
		PaymentReference:  data.PaymentReference,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	for _, l := range data.Lines {
		order.Lines = append(order.Lines, entity.CartLine{
			Item:      toItemDomain(l.Item),
			Quantity:  l.Quantity,
			Size:      entity.Size(l.Size),
			Milk:      entity.Milk(l.Milk),
			Sweetness: l.Sweetness,
			Ice:       entity.Ice(l.Ice),
		})
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	orderM := &model.OrderModel{
		ID:                data.ID,
		SessionID:         data.SessionID,
		UserID:            data.UserID,
		Subtotal:          data.Subtotal,
		Tax:               data.Tax,
		DeliveryFee:       data.DeliveryFee,
		Discount:          data.Discount,
		CreditsDiscount:   data.CreditsDiscount,
		Total:             data.Total,
		DiscountCode:      data.DiscountCode,
		CreditsEarned:     data.CreditsEarned,
		CreditsUsed:       data.CreditsUsed,
		Status:            string(data.Status),
		FulfillmentMethod: string(data.FulfillmentMethod),
		IsGuestOrder:      data.IsGuestOrder,
		EstimatedMinutes:  data.EstimatedMinutes,
		DeliveryAddress:   data.DeliveryAddress,
		VehicleInfo:       data.VehicleInfo,
		PaymentReference:  data.PaymentReference,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	for i, l := range data.Lines {
		orderM.Lines = append(orderM.Lines, model.OrderLineModel{
			OrderID:   data.ID,
			Position:  i,
			Item:      fromItemDomain(l.Item),
			Quantity:  l.Quantity,
			Size:      string(l.Size),
			Milk:      string(l.Milk),
			Sweetness: l.Sweetness,
			Ice:       string(l.Ice),
			UnitPrice: l.UnitPrice(),
			LineTotal: l.LineTotal(),
		})
	}

	return orderM
}
