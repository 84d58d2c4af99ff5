package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	domainerrors "brewhouse/internal/domain/errors"
)

const testClientID = "brewhouse-web.apps.googleusercontent.com"

func stubValidator(payload *idtoken.Payload, gotAudience *string) IDTokenValidator {
	return func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		*gotAudience = audience
		if token != "signed" {
			return nil, errors.New("idtoken: invalid token")
		}

		return payload, nil
	}
}

func googlePayload(claims map[string]any) *idtoken.Payload {
	return &idtoken.Payload{Issuer: "https://accounts.google.com", Subject: "10923", Claims: claims}
}

func TestGoogleVerifier_VerifyIDToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("verified token", func(t *testing.T) {
		var audience string
		payload := googlePayload(map[string]any{
			"email": "lover@gmail.com", "email_verified": true, "name": "Coffee Lover", "picture": "https://lh3.example/p.png",
		})
		v := NewGoogleVerifierWithValidator(testClientID, stubValidator(payload, &audience), logger)

		identity, err := v.VerifyIDToken(ctx, "signed")
		require.NoError(t, err)
		assert.Equal(t, testClientID, audience)
		assert.Equal(t, "10923", identity.Subject)
		assert.Equal(t, "lover@gmail.com", identity.Email)
		assert.Equal(t, "Coffee Lover", identity.Name)
		assert.Equal(t, "https://lh3.example/p.png", identity.Picture)
	})

	tests := []struct {
		name    string
		token   string
		payload *idtoken.Payload
	}{
		{name: "bad signature", token: "forged", payload: googlePayload(nil)},
		{name: "unverified email", token: "signed", payload: googlePayload(map[string]any{"email": "a@b.co", "email_verified": false})},
		{name: "missing email", token: "signed", payload: googlePayload(map[string]any{"email_verified": true})},
		{name: "foreign issuer", token: "signed", payload: &idtoken.Payload{Issuer: "https://evil.example", Claims: map[string]any{"email": "a@b.co", "email_verified": true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var audience string
			v := NewGoogleVerifierWithValidator(testClientID, stubValidator(tt.payload, &audience), logger)

			_, err := v.VerifyIDToken(ctx, tt.token)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidGoogleToken)
		})
	}

	t.Run("no client configured", func(t *testing.T) {
		var audience string
		v := NewGoogleVerifierWithValidator("", stubValidator(googlePayload(nil), &audience), logger)

		_, err := v.VerifyIDToken(ctx, "signed")
		assert.ErrorIs(t, err, domainerrors.ErrGoogleSignInDisabled)
		assert.Empty(t, audience)
	})
}
