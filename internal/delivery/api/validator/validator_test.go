package validator

import (
	"testing"

	domainerrors "brewhouse/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestEchoValidator(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&signupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))

	err := v.Validate(&signupRequest{Email: "nope", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "name is required")
	assert.Contains(t, appErr.Details(), "email must be a valid email")
	assert.Contains(t, appErr.Details(), "password must satisfy min=6")
}
