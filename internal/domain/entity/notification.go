package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorises in-app notifications.
type NotificationType string

const (
	NotificationOrder  NotificationType = "order"
	NotificationReward NotificationType = "reward"
	NotificationPromo  NotificationType = "promo"
)

// Notification is an in-app message shown to a session.
type Notification struct {
	ID          uuid.UUID        `json:"id"`          // The Global Unique Identifier (GUID) for the notification.
	SessionID   uuid.UUID        `json:"session_id"`  // Session the notification belongs to.
	Title       string           `json:"title"`       // Short headline.
	Description string           `json:"description"` // Body text.
	Type        NotificationType `json:"type"`        // order, reward or promo.
	Read        bool             `json:"read"`        // Whether the session has seen it.
	CreatedAt   time.Time        `json:"created_at"`  // Timestamp of when the notification was created.

	// DedupeKey, when set, is unique per notification so replays of the same
	// source event are stored once.
	DedupeKey string `json:"-"`
}

// NewNotification builds an unread notification stamped with now.
func NewNotification(sessionID uuid.UUID, typ NotificationType, title, description string) *Notification {
	return &Notification{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Title:       title,
		Description: description,
		Type:        typ,
		CreatedAt:   time.Now().UTC(),
	}
}

// WelcomeNotifications are the promo notices every new session starts with.
func WelcomeNotifications(sessionID uuid.UUID) []*Notification {
	return []*Notification{
		NewNotification(sessionID, NotificationPromo, "Welcome to Coffee Store!", "Enjoy 10% off your first order with code WELCOME20"),
		NewNotification(sessionID, NotificationPromo, "Christmas Special", "New Gingerbread Latte is here! Try it today."),
	}
}

// OrderStatusNotification is the notice sent when an order reaches a status the
// customer acts on. It returns nil for the intermediate kitchen states.
// Notices for the same order and status share a DedupeKey.
func OrderStatusNotification(sessionID uuid.UUID, order *Order, status OrderStatus) *Notification {
	switch status {
	case StatusReady, StatusOutForDelivery, StatusDelivered:
	default:
		return nil
	}
	label, description := stepLabel(order.FulfillmentMethod, status)

	n := NewNotification(sessionID, NotificationOrder, label+": #"+order.ShortID(), description)
	n.DedupeKey = "order:" + order.ID.String() + ":" + status.String()

	return n
}
