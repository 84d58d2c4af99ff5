package impl

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates the notification inbox use case.
func NewNotificationService(repo repository.NotificationRepository) usecase.NotificationUsecase {
	return &notificationService{repo: repo}
}

func (srv *notificationService) List(ctx context.Context, sessionID uuid.UUID) (*usecase.NotificationList, error) {
	notifications, err := srv.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	unread, err := srv.repo.CountUnread(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count unread notifications")
	}

	return &usecase.NotificationList{Notifications: notifications, Unread: unread}, nil
}

func (srv *notificationService) MarkRead(ctx context.Context, sessionID, notificationID uuid.UUID) error {
	err := srv.repo.MarkRead(ctx, sessionID, notificationID)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return domainerrors.ErrNotFound.WithDetails("notification not found")
	}

	return errors.Wrap(err, "failed to mark notification read")
}

func (srv *notificationService) MarkAllRead(ctx context.Context, sessionID uuid.UUID) error {
	return errors.Wrap(srv.repo.MarkAllRead(ctx, sessionID), "failed to mark notifications read")
}

func (srv *notificationService) RecordOrderEvent(ctx context.Context, event *service.OrderEvent) (bool, error) {
	if event.Type != service.EventOrderStatusChanged {
		return false, nil
	}

	sessionID, err := uuid.Parse(event.SessionID)
	if err != nil {
		return false, domainerrors.ErrValidationFailed.WithDetails("event session_id is not a UUID")
	}
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return false, domainerrors.ErrValidationFailed.WithDetails("event order_id is not a UUID")
	}

	order := &entity.Order{ID: orderID, FulfillmentMethod: entity.FulfillmentMethod(event.FulfillmentMethod)}
	notification := entity.OrderStatusNotification(sessionID, order, entity.OrderStatus(event.Status))
	if notification == nil {
		return false, nil
	}

	// Push delivery is at-least-once; a redelivered status change is a no-op.
	created, err := srv.repo.CreateOnce(ctx, notification)
	if err != nil {
		return false, errors.Wrap(err, "failed to store order notification")
	}

	return created, nil
}
