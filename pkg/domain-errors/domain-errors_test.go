package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesExistingCode(t *testing.T) {
	inner := New(CodeAuthRejected, "token expired")
	wrapped := Wrap(inner, CodeInternal, "me fetch failed")

	assert.True(t, HasCode(wrapped, CodeAuthRejected))
	assert.False(t, HasCode(wrapped, CodeInternal))
	assert.True(t, errors.Is(wrapped, inner))
}

func TestWrapForeignError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := Wrap(cause, CodeNetwork, "identity endpoint unreachable")

	require.True(t, HasCode(wrapped, CodeNetwork))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "identity endpoint unreachable", wrapped.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	a := New(CodeValidation, "bad credentials")
	b := New(CodeValidation, "different message")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, New(CodeNetwork, "")))
}

func TestErrorMessageFallsBackToCode(t *testing.T) {
	err := New(CodeVerificationFetch, "")
	assert.Equal(t, string(CodeVerificationFetch), err.Error())
}
