package usecase

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
	"brewhouse/internal/domain/service"
)

// NotificationList is the inbox of a session.
type NotificationList struct {
	Notifications []*entity.Notification
	Unread        int64
}

// NotificationUsecase reads and acknowledges in-app notifications.
type NotificationUsecase interface {
	List(ctx context.Context, sessionID uuid.UUID) (*NotificationList, error)
	MarkRead(ctx context.Context, sessionID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, sessionID uuid.UUID) error

	// RecordOrderEvent turns a status change event into a notification for the
	// session that placed the order. It reports whether one was created.
	RecordOrderEvent(ctx context.Context, event *service.OrderEvent) (bool, error)
}
