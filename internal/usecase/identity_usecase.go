package usecase

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput defines the data required to create an account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// IdentityUsecase logs sessions in and out.
type IdentityUsecase interface {
	// Login checks the password of an existing account or creates one for an
	// unknown email, then attaches the user to the session.
	Login(ctx context.Context, sessionID uuid.UUID, input LoginInput) (*entity.User, error)
	Signup(ctx context.Context, sessionID uuid.UUID, input SignupInput) (*entity.User, error)

	// LoginWithGoogle verifies a Google ID token, finds or creates the account
	// for its email and attaches it to the session.
	LoginWithGoogle(ctx context.Context, sessionID uuid.UUID, idToken string) (*entity.User, error)
	ContinueAsGuest(ctx context.Context, sessionID uuid.UUID) error
	Logout(ctx context.Context, sessionID uuid.UUID) error

	// CurrentUser returns ErrUnauthorized when no user is attached.
	CurrentUser(ctx context.Context, sessionID uuid.UUID) (*entity.User, error)
}
