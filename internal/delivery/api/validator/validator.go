// Package validator plugs go-playground/validator into echo's c.Validate.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports field names by their json tag.
func New() *EchoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &EchoValidator{validate: v}
}

// Validate returns ErrValidationFailed listing each failing field.
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "max", "len", "gte", "lte":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
