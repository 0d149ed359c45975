package xredis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var _ Client = (*client)(nil)

func TestIsNil(t *testing.T) {
	require.True(t, IsNil(redis.Nil))
	require.False(t, IsNil(nil))
	require.False(t, IsNil(errors.New("connection refused")))
	require.True(t, IsNil(fmt.Errorf("get: %w", redis.Nil)))
}
