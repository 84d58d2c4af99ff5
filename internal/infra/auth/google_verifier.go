package auth

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/api/idtoken"

	"brewhouse/config"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
)

// IDTokenValidator checks a Google-signed ID token against an audience.
// idtoken.Validate is the production implementation.
type IDTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type googleVerifier struct {
	clientID string
	validate IDTokenValidator
	logger   *slog.Logger
}

// NewGoogleVerifier verifies tokens minted for the configured OAuth client.
func NewGoogleVerifier(cfg *config.Config, logger *slog.Logger) service.GoogleTokenVerifier {
	return NewGoogleVerifierWithValidator(cfg.GoogleOAuth.ClientID, idtoken.Validate, logger)
}

func NewGoogleVerifierWithValidator(clientID string, validate IDTokenValidator, logger *slog.Logger) service.GoogleTokenVerifier {
	return &googleVerifier{
		clientID: clientID,
		validate: validate,
		logger:   logger,
	}
}

func (v *googleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, domainerrors.ErrGoogleSignInDisabled
	}

	// Signature, audience and expiry are checked by the validator.
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		v.logger.Warn("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidGoogleToken, err.Error())
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return nil, domainerrors.ErrInvalidGoogleToken.WithDetails("invalid issuer")
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return nil, domainerrors.ErrInvalidGoogleToken.WithDetails("email not verified")
	}
	email, _ := payload.Claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return nil, domainerrors.ErrInvalidGoogleToken.WithDetails("token carries no email")
	}

	identity := &service.GoogleIdentity{
		Subject: payload.Subject,
		Email:   email,
	}
	identity.Name, _ = payload.Claims["name"].(string)
	identity.Picture, _ = payload.Claims["picture"].(string)

	return identity, nil
}
