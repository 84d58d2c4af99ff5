package usecase

import (
	"context"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// UpdateProfileInput changes the fields that are set.
type UpdateProfileInput struct {
	Name           *string
	PreferredDrink *string
}

// AddressInput is a saved address as entered on the profile page.
type AddressInput struct {
	Label     string
	FullName  string
	Street    string
	Apartment string
	City      string
	State     string
	ZipCode   string
	Phone     string
	IsDefault bool
}

// CardInput is a card as entered on the profile page.
type CardInput struct {
	Number     string
	Expiry     string
	HolderName string
	IsDefault  bool
}

// ProfileUsecase manages the logged-in user's profile, addresses and cards.
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, sessionID uuid.UUID, input UpdateProfileInput) (*entity.User, error)
	UploadAvatar(ctx context.Context, sessionID uuid.UUID, contentType string, data []byte) (*entity.User, error)

	AddAddress(ctx context.Context, sessionID uuid.UUID, input AddressInput) (*entity.SavedAddress, error)
	UpdateAddress(ctx context.Context, sessionID, addressID uuid.UUID, input AddressInput) (*entity.SavedAddress, error)
	RemoveAddress(ctx context.Context, sessionID, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, sessionID, addressID uuid.UUID) error

	AddCard(ctx context.Context, sessionID uuid.UUID, input CardInput) (*entity.SavedCard, error)
	RemoveCard(ctx context.Context, sessionID, cardID uuid.UUID) error
	SetDefaultCard(ctx context.Context, sessionID, cardID uuid.UUID) error
}
