// Package errors wraps github.com/pkg/errors for the service. Wrapping and
// formatting record a stack; matching goes through the standard library.
package errors

import (
	stderrors "errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error { return stderrors.New(text) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// Wrap annotates err with message and the caller's stack. A nil err stays nil.
func Wrap(err error, message string) error { return pkgerrors.Wrap(err, message) }

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

func WithStack(err error) error { return pkgerrors.WithStack(err) }

func Errorf(format string, args ...any) error { return pkgerrors.Errorf(format, args...) }

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Stack renders the innermost recorded stack of err, or "" when none was recorded.
func Stack(err error) string {
	var trace string
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			trace = fmt.Sprintf("%+v", st.StackTrace())
		}
		err = stderrors.Unwrap(err)
	}

	return trace
}
