// Package pubsub publishes order lifecycle events to Google Pub/Sub, to a
// local push endpoint during development, or nowhere.
package pubsub

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"brewhouse/config"
	"brewhouse/internal/domain/service"
)

// Supported providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher(logger *slog.Logger) service.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

func eventAttributes(event *service.OrderEvent) map[string]string {
	attributes := map[string]string{
		"type":     event.Type,
		"order_id": event.OrderID,
		"status":   event.Status,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, using no-op publisher")

		return NewNoopPublisher(logger), nil
	}

	var publisher service.EventPublisher
	var err error

	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case ProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}

		publisher, err = NewGooglePubSubPublisher(context.Background(), cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
