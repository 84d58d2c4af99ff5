package auth

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"brewhouse/config"
	domainerrors "brewhouse/internal/domain/errors"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := hasher.Hash("latte-art-42")
	require.NoError(t, err)
	assert.NotEqual(t, "latte-art-42", hash)

	assert.True(t, hasher.Check("latte-art-42", hash))
	assert.False(t, hasher.Check("latte-art-43", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check("latte-art-42", "not-a-hash"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := hasher.Hash("espresso")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 99}})

	assert.Equal(t, bcrypt.DefaultCost, hasher.(*bcryptHasher).cost)
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := hasher.Hash(string(long))

	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}
