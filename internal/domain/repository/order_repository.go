package repository

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// OrderRepository persists placed orders with their line snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListBySession returns the session's orders, most recent first.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Order, error)

	// ListByUser returns the user's orders across sessions, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListActive returns up to limit orders that have not reached the terminal state, oldest first.
	ListActive(ctx context.Context, limit int) ([]*entity.Order, error)

	// UpdateStatus writes order.Status and order.EstimatedMinutes only if the
	// stored status still equals from; otherwise it returns ErrOrderStatusMismatch.
	UpdateStatus(ctx context.Context, order *entity.Order, from entity.OrderStatus) error
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notifications ...*entity.Notification) error

	// CreateOnce stores n unless a notification with the same DedupeKey exists.
	// It reports whether n was stored.
	CreateOnce(ctx context.Context, n *entity.Notification) (bool, error)

	// ListBySession returns the session's notifications, newest first.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Notification, error)

	// MarkRead returns ErrNotificationNotFound for an id the session does not own.
	MarkRead(ctx context.Context, sessionID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, sessionID uuid.UUID) error
	CountUnread(ctx context.Context, sessionID uuid.UUID) (int64, error)
}
