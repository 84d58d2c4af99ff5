package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("cart empty")
	wrapped := Wrapf(Wrap(sentinel, "load cart"), "checkout %s", "abc")

	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "checkout abc: load cart: cart empty", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestStack(t *testing.T) {
	assert.Empty(t, Stack(nil))
	assert.Empty(t, Stack(stderrors.New("plain")))
	assert.Contains(t, Stack(WithStack(stderrors.New("plain"))), "TestStack")
	assert.Contains(t, Stack(Errorf("code %d", 7)), "errors_test.go")
}
