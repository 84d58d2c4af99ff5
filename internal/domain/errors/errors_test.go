package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	err := ErrValidationFailed.WithDetails("zip code must have 5 digits")

	assert.True(t, stderrors.Is(err, ErrValidationFailed))
	assert.False(t, stderrors.Is(err, ErrCartEmpty))
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
	assert.Equal(t, "zip code must have 5 digits", err.Details())
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrOrderNotFound.WrapMessage("tracking lookup")

	var appErr AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "ORDER_NOT_FOUND", appErr.ErrorCode())
	assert.True(t, stderrors.Is(err, ErrOrderNotFound))
}

func TestDatabaseExecuteError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewDatabaseExecuteError(cause, "insert order")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
}

func TestBaseErrors_CodesAreUnique(t *testing.T) {
	all := []*BaseError{
		ErrSessionNotFound, ErrUnauthorized, ErrLoginRequired,
		ErrUserNotFound, ErrUserAlreadyExists, ErrInvalidCredentials,
		ErrInvalidGoogleToken, ErrGoogleSignInDisabled, ErrPasswordHashFailed,
		ErrAddressNotFound, ErrCardNotFound, ErrAvatarTooLarge, ErrUnsupportedAvatarType,
		ErrItemNotFound, ErrInvalidCartLine, ErrCartEmpty, ErrDiscountAlreadyApplied,
		ErrCheckoutInProgress, ErrCartChanged, ErrPaymentDeclined,
		ErrOrderNotFound, ErrOrderStatusConflict,
		ErrValidationFailed, ErrInternalError, ErrNotFound,
	}

	seen := make(map[string]bool, len(all))
	for _, err := range all {
		code := err.ErrorCode()
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true

		assert.NotEmpty(t, err.Message(), code)
		assert.GreaterOrEqual(t, err.HTTPCode(), http.StatusBadRequest, code)
	}

	assert.Equal(t, http.StatusUnauthorized, ErrInvalidGoogleToken.HTTPCode())
	assert.Equal(t, http.StatusServiceUnavailable, ErrGoogleSignInDisabled.HTTPCode())
}
