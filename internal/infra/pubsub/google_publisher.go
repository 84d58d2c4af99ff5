package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"

	"brewhouse/internal/domain/service"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher. The topic
// must already exist.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	publisher := client.Publisher(topicID)
	// Events of one order must arrive in the order they happened.
	publisher.EnableMessageOrdering = true

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishOrderEvent publishes an order event keyed by the order id.
func (p *googlePubSubPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data:        data,
		Attributes:  eventAttributes(event),
		OrderingKey: event.OrderID,
	}

	result := p.publisher.Publish(ctx, msg)
	serverID, err := result.Get(ctx)
	if err != nil {
		p.publisher.ResumePublish(event.OrderID)

		return errors.WithStack(err)
	}

	p.logger.Debug("[GooglePubSub] Event published",
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
