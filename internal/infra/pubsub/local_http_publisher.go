package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"brewhouse/internal/domain/service"
)

// localHTTPPublisher implements EventPublisher by sending HTTP POST requests
// to a local endpoint, simulating Pub/Sub push behavior for development
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// PushMessage represents the structure of a Pub/Sub push message.
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
		OrderingKey string            `json:"orderingKey,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// PublishOrderEvent posts the event wrapped in a push envelope.
func (p *localHTTPPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	pushMsg := PushMessage{
		Subscription: "projects/local/subscriptions/order-events",
	}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	pushMsg.Message.MessageID = uuid.NewString()
	pushMsg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	pushMsg.Message.Attributes = eventAttributes(event)
	pushMsg.Message.OrderingKey = event.OrderID

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("push endpoint returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Debug("[LocalPubSub] Event published",
		slog.String("endpoint", p.endpoint),
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
	)

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}
