package errorspkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := New("easydb.GetSingle", cause)

	require.EqualError(t, err, "easydb.GetSingle: connection refused")
	require.ErrorIs(t, err, cause)

	var dataErr *Error
	require.ErrorAs(t, err, &dataErr)
	require.Equal(t, "easydb.GetSingle", dataErr.Op)
}

func TestErrorWrapsAmbiguousCommit(t *testing.T) {
	cause := errors.New("broken pipe")
	err := New("easydb.AddEntry", fmt.Errorf("%w: %v", ErrAmbiguousCommit, cause))

	require.ErrorIs(t, err, ErrAmbiguousCommit)
}
