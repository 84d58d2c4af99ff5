package service

import (
	"context"
	"time"
)

// Order event types.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published whenever an order is placed or advances a state.
type OrderEvent struct {
	RequestID         string    `json:"request_id,omitempty"` // For distributed tracing
	Type              string    `json:"type"`
	OrderID           string    `json:"order_id"`
	SessionID         string    `json:"session_id"`
	UserID            string    `json:"user_id,omitempty"`
	Status            string    `json:"status"`
	PreviousStatus    string    `json:"previous_status,omitempty"`
	FulfillmentMethod string    `json:"fulfillment_method"`
	Total             string    `json:"total"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
