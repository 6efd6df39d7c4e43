package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("bad age")
	err := Wrap(CodeInvalidInput, "invalid age", cause)

	require.EqualError(t, err, "invalid age: bad age")
	require.ErrorIs(t, err, cause)
	require.True(t, IsCode(err, CodeInvalidInput))
	require.True(t, IsCode(fmt.Errorf("outer: %w", err), CodeInvalidInput))
	require.Equal(t, CodeInvalidInput, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	require.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	require.False(t, IsCode(errors.New("boom"), CodeInvalidInput))
	require.EqualError(t, Wrap(CodeInternal, "no cause", nil), "no cause")
}
