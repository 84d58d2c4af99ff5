package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"brewhouse/config"
)

func newOIDCHandler(t *testing.T, pubsub *config.PubSubConfig, payload *idtoken.Payload, gotAudience *string) *EventHandler {
	t.Helper()

	return NewEventHandler(EventHandlerParams{
		Config: &config.Config{PubSub: pubsub},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Validator: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			if gotAudience != nil {
				*gotAudience = audience
			}
			if token != "good" {
				return nil, errors.New("bad signature")
			}

			return payload, nil
		},
	})
}

func pushRequest(authorization string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "http://shop.local/events/push", strings.NewReader(`{}`))
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}

	return req
}

func TestEventHandler_VerifyPushToken(t *testing.T) {
	google := &idtoken.Payload{
		Issuer: "https://accounts.google.com",
		Claims: map[string]any{"email": "push@shop.iam.gserviceaccount.com", "email_verified": true},
	}

	t.Run("derives audience from the request", func(t *testing.T) {
		var audience string
		h := newOIDCHandler(t, &config.PubSubConfig{VerifyOIDC: true}, google, &audience)

		require.NoError(t, h.verifyPushToken(pushRequest("Bearer good")))
		assert.Equal(t, "http://shop.local/events/push", audience)
	})

	t.Run("configured audience wins", func(t *testing.T) {
		var audience string
		h := newOIDCHandler(t, &config.PubSubConfig{VerifyOIDC: true, PushAudience: "https://shop.example/events/push"}, google, &audience)

		require.NoError(t, h.verifyPushToken(pushRequest("Bearer good")))
		assert.Equal(t, "https://shop.example/events/push", audience)
	})

	t.Run("rejects", func(t *testing.T) {
		h := newOIDCHandler(t, &config.PubSubConfig{VerifyOIDC: true, PushServiceAccount: "other@shop.iam.gserviceaccount.com"}, google, nil)

		assert.Error(t, h.verifyPushToken(pushRequest("")))
		assert.Error(t, h.verifyPushToken(pushRequest("Basic good")))
		assert.Error(t, h.verifyPushToken(pushRequest("Bearer forged")))
		assert.ErrorContains(t, h.verifyPushToken(pushRequest("Bearer good")), "unexpected service account")
	})

	t.Run("foreign issuer", func(t *testing.T) {
		h := newOIDCHandler(t, &config.PubSubConfig{VerifyOIDC: true}, &idtoken.Payload{Issuer: "https://evil.example"}, nil)

		assert.ErrorContains(t, h.verifyPushToken(pushRequest("Bearer good")), "invalid issuer")
	})
}

func TestEventHandler_HandlePushRequiresOIDC(t *testing.T) {
	h := newOIDCHandler(t, &config.PubSubConfig{VerifyOIDC: true}, &idtoken.Payload{Issuer: "accounts.google.com"}, nil)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(pushRequest(""), rec)

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
