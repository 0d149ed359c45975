package repository

import (
	"testing"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func Test_activityCounterRepository_Increase(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewActivityCounterRepository()

	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < 10; i++ {
		eg.Go(func() error {
			return repo.Increase(ctx, testutil.User1, entity.CounterPosts, 1)
		})
	}
	require.NoError(t, eg.Wait())
	require.NoError(t, repo.Increase(ctx, testutil.User1, entity.CounterEventsAttendedIn("tech"), 2))

	counters, err := repo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)

	values := map[string]int{}
	for _, c := range counters {
		values[c.Name] = c.Value
	}
	require.Equal(t, map[string]int{"posts": 10, "events_attended:tech": 2}, values)
}
