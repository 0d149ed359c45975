package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	require.Equal(t, NotFound, CodeOf(New(NotFound, "Not found badge %s", "first_event")))
	require.Equal(t, Unavailable, CodeOf(fmt.Errorf("wrap: %w", New(Unavailable, "down"))))
	require.Equal(t, Unknown.Code, CodeOf(errors.New("raw")))
	require.Equal(t, Code(0), CodeOf(nil))
}

func TestError_Is(t *testing.T) {
	err := New(FailedPrecondition, "Rewards were already claimed")
	require.True(t, errors.Is(err, Error{Code: FailedPrecondition}))
	require.False(t, errors.Is(err, Error{Code: NotFound}))
	require.Equal(t, "Rewards were already claimed", err.Error())
}
