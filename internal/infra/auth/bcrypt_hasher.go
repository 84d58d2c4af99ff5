// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"brewhouse/config"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
