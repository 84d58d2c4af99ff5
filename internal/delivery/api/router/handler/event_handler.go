package handler

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"brewhouse/config"
	deliverycontext "brewhouse/internal/delivery/context"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// TokenValidator checks a Google-signed ID token against an audience.
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	Config         *config.Config
	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
	Validator      TokenValidator `optional:"true"`
}

// EventHandler consumes order events pushed by Pub/Sub or the local publisher.
type EventHandler struct {
	pushToken      string
	verifyOIDC     bool
	audience       string
	serviceAccount string
	validate       TokenValidator
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewEventHandler creates a new push handler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	h := &EventHandler{
		validate:       params.Validator,
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
	if cfg := params.Config.PubSub; cfg != nil {
		h.pushToken = cfg.PushToken
		h.verifyOIDC = cfg.VerifyOIDC
		h.audience = cfg.PushAudience
		h.serviceAccount = cfg.PushServiceAccount
	}
	if h.validate == nil {
		h.validate = idtoken.Validate
	}

	return h
}

// HandlePush acknowledges with 200 unless a retry could succeed, in which case
// it answers 503 so the message is redelivered.
func (h *EventHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.pushToken != "" && subtle.ConstantTimeCompare([]byte(c.QueryParam("token")), []byte(h.pushToken)) != 1 {
		h.logger.Warn("[Events] Rejected push with invalid token")

		return c.NoContent(http.StatusUnauthorized)
	}
	if h.verifyOIDC {
		if err := h.verifyPushToken(c.Request()); err != nil {
			h.logger.Warn("[Events] Rejected push with invalid OIDC token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Events] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Events] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Events] Failed to parse order event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	created, err := h.notificationUC.RecordOrderEvent(ctx, &event)
	if err != nil {
		retryable := !errors.Is(err, domainerrors.ErrValidationFailed)
		reqLogger.Error("[Events] Failed to process order event",
			slog.String("order_id", event.OrderID),
			slog.String("type", event.Type),
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Debug("[Events] Order event processed",
		slog.String("order_id", event.OrderID),
		slog.String("type", event.Type),
		slog.String("status", event.Status),
		slog.Bool("notified", created),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event payload, then the
// request context.
func (h *EventHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPushToken validates the OIDC bearer token Pub/Sub attaches to authenticated push requests.
func (h *EventHandler) verifyPushToken(req *http.Request) error {
	token, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !ok || token == "" {
		return errors.New("missing bearer token")
	}

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return errors.New("email not verified")
	}
	if h.serviceAccount != "" {
		if email, _ := payload.Claims["email"].(string); email != h.serviceAccount {
			return errors.Errorf("unexpected service account: %s", email)
		}
	}

	return nil
}
