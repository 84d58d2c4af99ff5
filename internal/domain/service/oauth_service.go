package service

import "context"

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject string // Google's stable account id ('sub' claim)
	Email   string // Verified email address
	Name    string // Display name, may be empty
	Picture string // Profile picture URL, may be empty
}

// GoogleTokenVerifier checks ID tokens issued by Google Sign-In.
type GoogleTokenVerifier interface {
	// VerifyIDToken returns ErrInvalidGoogleToken for tokens that fail signature,
	// audience, expiry, issuer or email verification checks.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)
}
