package action

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	locker := NewLocalLocker()

	var inside, maxInside atomic.Int32
	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < 10; i++ {
		eg.Go(func() error {
			unlock, err := locker.Lock(ctx, testutil.User1)
			if err != nil {
				return err
			}
			defer unlock()

			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	require.Equal(t, int32(1), maxInside.Load())

	// Different users do not block each other.
	unlock1, err := locker.Lock(ctx, testutil.User1)
	require.NoError(t, err)
	unlock2, err := locker.Lock(ctx, testutil.User2)
	require.NoError(t, err)
	unlock2()
	unlock1()
}
