// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"brewhouse/internal/domain/entity"
)

// Sentinel errors returned by repository implementations.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStatusMismatch  = errors.New("order status changed concurrently")
	ErrNotificationNotFound = errors.New("notification not found")
)

// UserRepository defines the standard operations for user persistence.
// Users are loaded and saved together with their saved addresses and cards.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	Create(ctx context.Context, user *entity.User) error

	// Update re-persists the whole user, replacing its addresses and cards.
	Update(ctx context.Context, user *entity.User) error
}
